package mongo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/user-service/internal/core/domain"
)

// dupKeyPattern matches the server message, e.g.
// `E11000 duplicate key error collection: db.users index: email_1 dup key: { email: "a@x.com" }`.
var dupKeyPattern = regexp.MustCompile(`dup key: \{\s*"?([^":\s]+)"?\s*:\s*(.*?)\s*\}`)

// translateWriteError turns unique index violations into domain conflicts and
// wraps everything else with op.
func translateWriteError(op string, err error) error {
	if field, value, ok := DuplicateKey(err); ok {
		return domain.NewConflictError(field, value, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// DuplicateKey extracts the conflicting field and value from a duplicate key
// error. ok is false when err is not a duplicate key error.
func DuplicateKey(err error) (field, value string, ok bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return "", "", false
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if isDuplicateCode(e.Code) {
				field, value = keyFromRaw(e.Raw, e.Message)
				return field, value, true
			}
		}
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) && isDuplicateCode(int(ce.Code)) {
		field, value = keyFromRaw(ce.Raw, ce.Message)
		return field, value, true
	}

	field, value = keyFromMessage(err.Error())
	return field, value, true
}

func isDuplicateCode(code int) bool {
	return code == 11000 || code == 11001 || code == 12582
}

// keyFromRaw prefers the structured keyValue document the server attaches
// and falls back to parsing msg.
func keyFromRaw(raw bson.Raw, msg string) (string, string) {
	if len(raw) > 0 {
		if kv, err := raw.LookupErr("keyValue"); err == nil {
			if doc, ok := kv.DocumentOK(); ok {
				if elems, err := doc.Elements(); err == nil && len(elems) > 0 {
					v := elems[0].Value()
					if s, ok := v.StringValueOK(); ok {
						return elems[0].Key(), s
					}
					return elems[0].Key(), v.String()
				}
			}
		}
	}
	return keyFromMessage(msg)
}

func keyFromMessage(msg string) (string, string) {
	m := dupKeyPattern.FindStringSubmatch(msg)
	if m == nil {
		return "unknown", ""
	}
	return m[1], strings.Trim(m[2], `"`)
}

// IsStorageFailure reports whether err originates from the database engine or
// the driver's connection to it.
func IsStorageFailure(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) ||
		mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected)
}
