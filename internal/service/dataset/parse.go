package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

//go:embed schema.json
var schemaJSON string

var documentSchema = jsonschema.MustCompileString("dataset.schema.json", schemaJSON)

// Parse checks that body is a dataset document and splits its objects array
// into raw records. Individual entries are not inspected here.
func Parse(body []byte, source string) (*domain.Dataset, error) {
	// jsonschema/v5 expects json.Number for numeric values
	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewParsingError("Error with JSON data parsing", source, err)
	}
	if dec.More() {
		return nil, errors.NewParsingError("Error with JSON data parsing: trailing data after document", source, nil)
	}
	if err := documentSchema.Validate(doc); err != nil {
		return nil, errors.NewParsingError("Dataset document has an unexpected shape", source, err)
	}

	objects := gjson.GetBytes(body, "objects")
	ds := &domain.Dataset{
		Records: make([]domain.RawRecord, 0, int(objects.Get("#").Int())),
	}
	objects.ForEach(func(_, value gjson.Result) bool {
		ds.Records = append(ds.Records, domain.NewRawRecord(value))
		return true
	})

	return ds, nil
}
