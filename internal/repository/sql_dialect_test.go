package repository

import (
	"strings"
	"testing"
)

func TestLikeOperatorByDialect(t *testing.T) {
	if got := likeOperatorByDialect("postgres"); got != "ILIKE" {
		t.Fatalf("postgres operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite operator want LIKE got %s", got)
	}
	if got := likeOperatorByDialect(""); got != "LIKE" {
		t.Fatalf("default operator want LIKE got %s", got)
	}
}

func TestBuildLikeConditionSkipsBlankColumns(t *testing.T) {
	condition, args := buildLikeCondition(nil, "GCS1", "tracking_code", " ", "from_pincode")
	if len(args) != 2 {
		t.Fatalf("arg count want 2 got %d", len(args))
	}
	if condition != "tracking_code LIKE ? OR from_pincode LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
	if !strings.Contains(args[0].(string), "GCS1") {
		t.Fatalf("unexpected like arg: %v", args[0])
	}
}
