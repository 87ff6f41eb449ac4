package jsondoc

import (
	"errors"
	"fmt"
	"io"

	"github.com/reoring/jsondoc/internal/engine"
)

// DuplicateKeys scans one JSON text from src and lists every repeated object
// key without building a tree. Scanning stops after maxIssues findings when
// maxIssues > 0. Malformed input yields an error wrapping ErrSyntax.
func DuplicateKeys(src Source, maxIssues int) (Issues, error) {
	var found Issues
	enforced := engine.WrapWithEnforcement(src, engine.EnforceOptions{
		OnDuplicate: engine.DupWarn,
		IssueSink: func(si engine.SimpleIssue) {
			found = AppendIssues(found, Issue{Code: si.Code, Path: si.Path, Message: si.Message})
		},
	})
	depth, values := 0, 0
	for {
		if maxIssues > 0 && len(found) >= maxIssues {
			return found[:maxIssues], nil
		}
		tok, err := enforced.NextToken()
		switch {
		case errors.Is(err, io.EOF) && depth == 0 && values == 1:
			return found, nil
		case errors.Is(err, io.EOF):
			return nil, syntaxError(io.ErrUnexpectedEOF)
		case err != nil:
			return nil, syntaxError(err)
		}
		if depth == 0 {
			if values == 1 {
				return nil, fmt.Errorf("%w: trailing %s after top-level value", ErrSyntax, tok.Kind)
			}
			values++
		}
		switch tok.Kind {
		case engine.KindBeginObject, engine.KindBeginArray:
			depth++
		case engine.KindEndObject, engine.KindEndArray:
			depth--
		}
	}
}

// DuplicateKeysBytes is DuplicateKeys over a byte slice using the current
// driver.
func DuplicateKeysBytes(data []byte, maxIssues int) (Issues, error) {
	iss, err := DuplicateKeys(JSONBytes(data), maxIssues)
	if err != nil {
		return nil, fmt.Errorf("duplicate scan: %w", err)
	}
	return iss, nil
}
