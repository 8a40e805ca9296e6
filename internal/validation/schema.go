package validation

import (
	_ "embed"
	"fmt"
	"sync"

	"task-tracker/internal/taskerr"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed task_create_schema.json
var createSchemaJSON []byte

//go:embed task_update_schema.json
var updateSchemaJSON []byte

var (
	compileOnce  sync.Once
	createSchema *gojsonschema.Schema
	updateSchema *gojsonschema.Schema
	compileErr   error
)

func compile() {
	createSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(createSchemaJSON))
	if compileErr != nil {
		compileErr = fmt.Errorf("failed to compile create schema: %w", compileErr)
		return
	}
	updateSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(updateSchemaJSON))
	if compileErr != nil {
		compileErr = fmt.Errorf("failed to compile update schema: %w", compileErr)
	}
}

// ValidateCreateTask validates a raw create payload against the task schema.
// Returns a taskerr validation error with per-field messages on failure.
func ValidateCreateTask(payload []byte) error {
	return validate(payload, func() *gojsonschema.Schema { return createSchema })
}

// ValidateUpdateTask validates a raw partial-update payload. Absent fields are
// fine; present fields must satisfy the same constraints as at create.
func ValidateUpdateTask(payload []byte) error {
	return validate(payload, func() *gojsonschema.Schema { return updateSchema })
}

func validate(payload []byte, schema func() *gojsonschema.Schema) error {
	compileOnce.Do(compile)
	if compileErr != nil {
		return taskerr.Internal("schema unavailable", compileErr)
	}

	result, err := schema().Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		// Validate only errors when the payload is not valid JSON at all
		return taskerr.Invalid("invalid JSON payload", nil)
	}
	if result.Valid() {
		return nil
	}

	fields := make(map[string]string)
	for _, desc := range result.Errors() {
		fields[fieldName(desc)] = desc.Description()
	}
	return taskerr.Invalid("Validation Error", fields)
}

// fieldName resolves the offending field for a schema error. Required-property
// failures report field "(root)" and carry the property name in the details.
func fieldName(desc gojsonschema.ResultError) string {
	if prop, ok := desc.Details()["property"].(string); ok && desc.Field() == "(root)" {
		return prop
	}
	return desc.Field()
}
