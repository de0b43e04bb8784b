package store

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/models"
)

func TestBuildListNotesQuery_EmptyFilter(t *testing.T) {
	query, args, err := buildListNotesQuery(NoteFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(query, "WHERE") {
		t.Errorf("empty filter should add no WHERE clause, got %q", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
	if !strings.Contains(query, "ORDER BY updated_at DESC") {
		t.Errorf("expected ordering by updated_at, got %q", query)
	}
}

func TestBuildListNotesQuery_AllFilters(t *testing.T) {
	owner := int64(1)
	teamID := uuid.New()
	folder := "work"
	starred := true
	tag := "urgent"

	query, args, err := buildListNotesQuery(NoteFilter{
		OwnerID: &owner,
		TeamID:  &teamID,
		State:   models.StateActive,
		Folder:  &folder,
		Starred: &starred,
		Tag:     &tag,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, clause := range []string{"state =", "owner_id =", "team_id =", "folder =", "starred =", "tags @>"} {
		if !strings.Contains(query, clause) {
			t.Errorf("expected clause %q in query %q", clause, query)
		}
	}
	if len(args) != 6 {
		t.Errorf("expected 6 args, got %d: %v", len(args), args)
	}
	if !strings.Contains(query, "$6") {
		t.Errorf("expected dollar placeholders, got %q", query)
	}
}

func TestBuildListNotesQuery_TagWithQuotesStaysValidJSON(t *testing.T) {
	tag := `say "hi"`

	query, args, err := buildListNotesQuery(NoteFilter{Tag: &tag})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(query, "tags @>") {
		t.Errorf("expected tag containment clause, got %q", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d: %v", len(args), args)
	}

	literal, ok := args[0].(string)
	if !ok {
		t.Fatalf("expected string arg, got %T", args[0])
	}
	if !json.Valid([]byte(literal)) {
		t.Errorf("jsonb literal is not valid JSON: %q", literal)
	}

	var decoded []string
	if err := json.Unmarshal([]byte(literal), &decoded); err != nil {
		t.Fatalf("unmarshal literal: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != tag {
		t.Errorf("expected literal to round-trip tag %q, got %v", tag, decoded)
	}
}

func TestBuildListNotesQuery_TagWithBackslash(t *testing.T) {
	tag := `c:\notes`

	_, args, err := buildListNotesQuery(NoteFilter{Tag: &tag})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d: %v", len(args), args)
	}
	if literal := args[0].(string); !json.Valid([]byte(literal)) {
		t.Errorf("jsonb literal is not valid JSON: %q", literal)
	}
}

func TestBuildListNotesQuery_StateOnly(t *testing.T) {
	query, args, err := buildListNotesQuery(NoteFilter{State: models.StateTrashed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(query, "state = $1") {
		t.Errorf("expected state clause, got %q", query)
	}
	if len(args) != 1 || args[0] != "trashed" {
		t.Errorf("expected single arg \"trashed\", got %v", args)
	}
}
