package domain

import (
	"errors"
	"strings"
	"testing"
)

func testSchema() Schema {
	return Schema{
		Name:    "user",
		Version: "1.0",
		Fields: []FieldSpec{
			{Name: "username", Type: TypeString, Required: true, MinLength: IntPtr(3), MaxLength: IntPtr(20)},
			{Name: "age", Type: TypeInteger, Required: true, MinValue: FloatPtr(10), MaxValue: FloatPtr(20)},
			{Name: "role", Type: TypeString, Required: true, Choices: []any{"user", "admin", "moderator"}},
			{Name: "nickname", Type: TypeString, Required: false},
		},
	}
}

func validRecord() Record {
	return Record{"username": "alice", "age": 15, "role": "admin"}
}

func TestSchemaValidateRejectsDuplicateFields(t *testing.T) {
	s := Schema{
		Name: "dup",
		Fields: []FieldSpec{
			NewField("a", TypeString),
			NewField("a", TypeInteger),
		},
	}
	if err := s.Validate(); !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestCheckValidRecord(t *testing.T) {
	ok, violations := testSchema().Check(validRecord(), nil)
	if !ok {
		t.Fatalf("expected valid record, got violations %v", violations)
	}
}

func TestCheckMissingRequiredField(t *testing.T) {
	rec := validRecord()
	delete(rec, "username")

	ok, violations := testSchema().Check(rec, nil)
	if ok {
		t.Fatal("expected invalid record")
	}
	if len(violations) != 1 {
		t.Fatalf("expected exactly one violation, got %v", violations)
	}
	if !strings.Contains(violations[0], "username") || !strings.Contains(violations[0], "required") {
		t.Fatalf("violation should name the required field: %q", violations[0])
	}
}

func TestCheckNilValueCountsAsMissing(t *testing.T) {
	rec := validRecord()
	rec["username"] = nil

	ok, violations := testSchema().Check(rec, nil)
	if ok || len(violations) != 1 {
		t.Fatalf("expected one required violation, got %v", violations)
	}
}

func TestCheckMissingOptionalFieldIsFine(t *testing.T) {
	ok, violations := testSchema().Check(validRecord(), nil)
	if !ok {
		t.Fatalf("optional field absence must not violate: %v", violations)
	}
}

func TestCheckTypeMismatch(t *testing.T) {
	rec := validRecord()
	rec["age"] = "fifteen"

	ok, violations := testSchema().Check(rec, nil)
	if ok {
		t.Fatal("expected invalid record")
	}
	if len(violations) != 1 || !strings.Contains(violations[0], "expected integer") {
		t.Fatalf("expected a type violation naming integer, got %v", violations)
	}
}

func TestCheckIntegerAcceptsJSONFloat(t *testing.T) {
	rec := validRecord()
	rec["age"] = float64(15) // what encoding/json produces for 15

	if ok, violations := testSchema().Check(rec, nil); !ok {
		t.Fatalf("integral float64 must pass integer check: %v", violations)
	}
}

func TestCheckLengthBounds(t *testing.T) {
	rec := validRecord()
	rec["username"] = "ab"
	ok, violations := testSchema().Check(rec, nil)
	if ok || !strings.Contains(violations[0], "at least 3") {
		t.Fatalf("expected min length violation, got %v", violations)
	}

	rec["username"] = strings.Repeat("a", 21)
	ok, violations = testSchema().Check(rec, nil)
	if ok || !strings.Contains(violations[0], "at most 20") {
		t.Fatalf("expected max length violation, got %v", violations)
	}
}

func TestCheckRangeBoundaries(t *testing.T) {
	schema := testSchema()

	for _, tc := range []struct {
		age  int
		ok   bool
		want string
	}{
		{9, false, "at least 10"},
		{10, true, ""},
		{20, true, ""},
		{21, false, "at most 20"},
	} {
		rec := validRecord()
		rec["age"] = tc.age
		ok, violations := schema.Check(rec, nil)
		if ok != tc.ok {
			t.Fatalf("age %d: expected ok=%v, got violations %v", tc.age, tc.ok, violations)
		}
		if !tc.ok && !strings.Contains(violations[0], tc.want) {
			t.Fatalf("age %d: expected %q in %v", tc.age, tc.want, violations)
		}
	}
}

func TestCheckChoices(t *testing.T) {
	rec := validRecord()
	rec["role"] = "root"

	ok, violations := testSchema().Check(rec, nil)
	if ok {
		t.Fatal("expected invalid record")
	}
	if len(violations) != 1 || !strings.Contains(violations[0], "must be one of") {
		t.Fatalf("expected a choices violation listing the allowed set, got %v", violations)
	}
}

func TestCheckNumericChoiceSurvivesJSONRoundTrip(t *testing.T) {
	s := Schema{
		Name:   "sizes",
		Fields: []FieldSpec{{Name: "size", Type: TypeInteger, Required: true, Choices: []any{1, 2, 3}}},
	}
	if ok, violations := s.Check(Record{"size": float64(2)}, nil); !ok {
		t.Fatalf("2.0 should match declared choice 2: %v", violations)
	}
}

func TestCheckRulesAreIndependent(t *testing.T) {
	s := Schema{
		Name: "strict",
		Fields: []FieldSpec{
			{Name: "code", Type: TypeString, Required: true, MinLength: IntPtr(5), Choices: []any{"alpha", "omega"}},
		},
	}

	// Too short and outside the choice set: both rules must report.
	ok, violations := s.Check(Record{"code": "ab"}, nil)
	if ok {
		t.Fatal("expected invalid record")
	}
	if len(violations) != 2 {
		t.Fatalf("expected two independent violations, got %v", violations)
	}
}

func TestCheckCustomPredicate(t *testing.T) {
	s := Schema{
		Name:   "contacts",
		Fields: []FieldSpec{{Name: "email", Type: TypeEmail, Required: true, Validator: "email"}},
	}
	preds := BuiltinPredicates()

	if ok, violations := s.Check(Record{"email": "a@example.com"}, preds); !ok {
		t.Fatalf("valid email rejected: %v", violations)
	}

	ok, violations := s.Check(Record{"email": "not-an-email"}, preds)
	if ok || !strings.Contains(violations[0], `failed validation "email"`) {
		t.Fatalf("expected predicate violation, got %v", violations)
	}
}

func TestCheckUnknownPredicateIsAViolation(t *testing.T) {
	s := Schema{
		Name:   "contacts",
		Fields: []FieldSpec{{Name: "email", Type: TypeEmail, Required: true, Validator: "no-such-rule"}},
	}
	ok, violations := s.Check(Record{"email": "a@example.com"}, BuiltinPredicates())
	if ok || !strings.Contains(violations[0], "unknown validator") {
		t.Fatalf("expected unknown-validator violation, got %v", violations)
	}
}

func TestCheckJSONType(t *testing.T) {
	s := Schema{
		Name:   "blobs",
		Fields: []FieldSpec{{Name: "meta", Type: TypeJSON, Required: true}},
	}

	if ok, violations := s.Check(Record{"meta": map[string]any{"k": "v"}}, nil); !ok {
		t.Fatalf("map should satisfy json type: %v", violations)
	}
	if ok, _ := s.Check(Record{"meta": "just a string"}, nil); ok {
		t.Fatal("string must not satisfy json type")
	}
}
