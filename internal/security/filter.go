package security

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// operatorPrefix marks MongoDB operators; client-supplied keys carrying it
// are always dropped to block operator injection ($where, $gt, ...).
const operatorPrefix = "$"

// BuildFilter reduces a client-supplied mapping to the allow-listed fields.
// Keys outside the allow-list or starting with the operator prefix are
// silently dropped. Surviving nested documents are rejected, since they are
// the vehicle for operator injection.
func BuildFilter(clientFilter map[string]any, allowedFields []string) (bson.M, error) {
	allowed := allowSet(allowedFields)

	safe := bson.M{}
	for key, value := range clientFilter {
		if _, ok := allowed[key]; !ok || strings.HasPrefix(key, operatorPrefix) {
			continue
		}
		if isDocument(value) {
			return nil, domain.ErrInvalidFilterValue
		}
		safe[key] = value
	}
	return safe, nil
}

// BuildUpdate applies the same filtering as BuildFilter and wraps the result
// as a $set update. Fails when no valid field survives.
func BuildUpdate(body map[string]any, allowedFields []string) (bson.M, error) {
	safe, err := BuildFilter(body, allowedFields)
	if err != nil {
		return nil, err
	}
	if len(safe) == 0 {
		return nil, domain.ErrNoValidFields
	}
	return bson.M{"$set": safe}, nil
}

// SafeObjectID parses a client-supplied id, rejecting anything that is not a
// valid hex ObjectID before it can reach a query.
func SafeObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func allowSet(fields []string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func isDocument(v any) bool {
	switch v.(type) {
	case map[string]any, bson.M, bson.D:
		return true
	}
	return false
}
