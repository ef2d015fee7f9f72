package etl

import (
	"testing"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

var memberColumns = []string{
	"EXPID", "FNAME", "LNAME", "SEX", "YOB", "RESIDENCE", "CITIZEN", "SHERPA",
	"MSMTTIME1", "MSMTTIME2", "MSMTTIME3", "DEATHTIME", "INJURYTIME",
	"BIRTHDATE", "MSPEED", "MSMTDATE1", "MSMTDATE2", "MSMTDATE3",
	"DEATHDATE", "INJURYDATE", "MEMBERMEMO", "NECROLOGY",
	"DEATHTYPE", "DEATHCLASS", "INJURYTYPE", "MSMTBID", "MSMTTERM",
}

func newMembersTable(rows ...map[string]string) *table.Table {
	t := table.New(memberColumns...)
	for _, row := range rows {
		t.AppendMap(row)
	}
	return t
}

func TestStageMembers(t *testing.T) {
	tbl := newMembersTable(
		map[string]string{
			"EXPID": "EVER53101", "FNAME": "Edmund", "LNAME": "Hillary",
			"SEX": "M", "YOB": "1919", "CITIZEN": "New Zealand",
			"MSMTTIME1": "1130", "MEMBERMEMO": "None", "MSMTBID": "4",
		},
		map[string]string{
			"EXPID": "EVER53101", "FNAME": "", "LNAME": "Unknown",
			"SEX": "M", "CITIZEN": "Nepal", "SHERPA": "True",
		},
	)
	if err := StageMembers(tbl, DefaultCodes(), 42, 10, logger.Nop()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if tbl.Len() != 1 {
		t.Fatalf("Expected the unnamed member dropped, got %d rows", tbl.Len())
	}
	if got := tbl.Get(0, "MSMTTIME1"); got != "11:30+0545" {
		t.Errorf("Expected time repaired to 11:30+0545, got %q", got)
	}
	if got := tbl.Get(0, "MEMBERMEMO"); got != "" {
		t.Errorf("Expected None memo cleared, got %q", got)
	}
	if got := tbl.Get(0, "MSMTBID_DESC"); got != "Successful summit bid" {
		t.Errorf("Expected summit bid description, got %q", got)
	}
	id := tbl.Get(0, "PERSID")
	if len(id) != 10 {
		t.Errorf("Expected a 10-digit identifier, got %q", id)
	}
}

func TestDiscardUnnamedMembers(t *testing.T) {
	tbl := newMembersTable(
		map[string]string{"FNAME": "", "LNAME": "Unknown"},
		map[string]string{"FNAME": "3", "LNAME": "Unknown"},
		map[string]string{"FNAME": "John", "LNAME": "Unknown"},
		map[string]string{"FNAME": "", "LNAME": "Smith"},
	)
	discardUnnamedMembers(tbl, logger.Nop())

	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows kept, got %d", tbl.Len())
	}
	if got := tbl.Get(0, "FNAME"); got != "John" {
		t.Errorf("Expected John kept first, got %q", got)
	}
	if got := tbl.Get(1, "LNAME"); got != "Smith" {
		t.Errorf("Expected Smith kept, got %q", got)
	}
}

func TestFixKnownMembers(t *testing.T) {
	tbl := newMembersTable(
		map[string]string{"FNAME": "Nicolas Alexander", "LNAME": "Tombazi", "YOB": "1889"},
		map[string]string{"FNAME": "N. A.", "LNAME": "Tombazi", "YOB": ""},
	)
	fixKnownMembers(tbl)

	if got := tbl.Get(1, "FNAME"); got != "Nicolas Alexander" {
		t.Errorf("Expected unified first name, got %q", got)
	}
	if got := tbl.Get(1, "YOB"); got != "1889" {
		t.Errorf("Expected birth year copied, got %q", got)
	}
}

func TestCleanupCitizenship(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Malaysi", "Malaysia"},
		{"W Germany", "Germany"},
		{"1234", ""},
		{"Nepal?", "Nepal"},
		{"UK", "UK"},
	}
	for _, tt := range tests {
		tbl := newMembersTable(map[string]string{"CITIZEN": tt.raw})
		cleanupCitizenship(tbl)
		if got := tbl.Get(0, "CITIZEN"); got != tt.want {
			t.Errorf("Citizenship %q: expected %q, got %q", tt.raw, tt.want, got)
		}
	}
}

func TestAssignPersonIDsReproducible(t *testing.T) {
	build := func() *table.Table {
		return newMembersTable(
			map[string]string{"FNAME": "Edmund", "LNAME": "Hillary", "SEX": "M", "YOB": "1919"},
			map[string]string{"FNAME": "Tenzing", "LNAME": "Norgay", "SEX": "M", "YOB": "1914", "SHERPA": "True", "RESIDENCE": "Thame"},
			map[string]string{"FNAME": "Edmund", "LNAME": "Hillary", "SEX": "M", "YOB": "1919"},
		)
	}

	a := build()
	if err := assignPersonIDs(a, 42, 10, logger.Nop()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if a.Get(0, "PERSID") != a.Get(2, "PERSID") {
		t.Error("Expected rows with the same natural key to share an identifier")
	}
	if a.Get(0, "PERSID") == a.Get(1, "PERSID") {
		t.Error("Expected distinct keys to get distinct identifiers")
	}

	b := build()
	if err := assignPersonIDs(b, 42, 10, logger.Nop()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for i := 0; i < a.Len(); i++ {
		if a.Get(i, "PERSID") != b.Get(i, "PERSID") {
			t.Errorf("Row %d: expected the same identifier across runs, got %q and %q",
				i, a.Get(i, "PERSID"), b.Get(i, "PERSID"))
		}
	}
}
