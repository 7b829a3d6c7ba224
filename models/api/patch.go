package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"commandapi/core"
)

// ApplyCommandPatch applies an RFC 6902 JSON Patch document to the update view and
// returns the patched copy. The input is left untouched. Malformed documents, failing
// operations and members the update view does not have are reported as core.ErrValidation.
// The patched result is not validated here.
func ApplyCommandPatch(updateCommand *UpdateCommandModel, patchDocument []byte) (*UpdateCommandModel, error) {
	patch, err := jsonpatch.DecodePatch(patchDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid patch document: %v", core.ErrValidation, err)
	}

	original, err := json.Marshal(updateCommand)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command for patching: %w", err)
	}

	patched, err := patch.Apply(original)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to apply patch: %v", core.ErrValidation, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(patched))
	decoder.DisallowUnknownFields()

	var result UpdateCommandModel
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: patched command is invalid: %v", core.ErrValidation, err)
	}

	return &result, nil
}
