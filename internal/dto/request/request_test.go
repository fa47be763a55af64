package request

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"movie-api/pkg/apperror"
)

func TestParseForceFlag(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"absent", "", false},
		{"empty value", "force", true},
		{"empty with equals", "force=", true},
		{"blank", "force=%20%20", true},
		{"true", "force=true", true},
		{"upper case", "force=TRUE", true},
		{"one", "force=1", true},
		{"yes", "force=Yes", true},
		{"y", "force=y", true},
		{"false", "force=false", false},
		{"zero", "force=0", false},
		{"garbage", "force=maybe", false},
		{"upper no", "force=NO", false},
		{"yes with tail", "force=yes|anything", true},
		{"pipe", "force=yes|no", true},
		{"semicolon", "force=no;yes", false},
		{"padded token", "force=%20true%20,false", true},
		{"repeated", "force=1&force=0", true},
		{"repeated false first", "force=0&force=1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if got := ParseForceFlag(query); got != tt.want {
				t.Errorf("ParseForceFlag(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    PageRequest
		wantErr string
	}{
		{name: "defaults", query: "", want: PageRequest{Page: 0, Size: 20, SortBy: "id"}},
		{name: "explicit", query: "page=2&size=5", want: PageRequest{Page: 2, Size: 5, SortBy: "id"}},
		{name: "sort desc", query: "sort=title,desc", want: PageRequest{Size: 20, SortBy: "title", Desc: true}},
		{name: "sort asc", query: "sort=releaseYear", want: PageRequest{Size: 20, SortBy: "releaseYear"}},
		{name: "smallest size", query: "size=1", want: PageRequest{Size: 1, SortBy: "id"}},
		{name: "largest size", query: "size=100", want: PageRequest{Size: 100, SortBy: "id"}},
		{name: "negative page", query: "page=-1", wantErr: "Page index must not be negative"},
		{name: "zero size", query: "size=0", wantErr: "Page size must be between 1 and 100"},
		{name: "big size", query: "size=101", wantErr: "Page size must be between 1 and 100"},
		{name: "bad page", query: "page=x", wantErr: "Invalid parameter 'page' with value 'x'"},
		{name: "bad sort", query: "sort=budget", wantErr: "Invalid sort property 'budget'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _ := url.ParseQuery(tt.query)
			got, err := ParsePageRequest(query)
			if tt.wantErr != "" {
				appErr, ok := apperror.As(err)
				if !ok || appErr.Kind != apperror.KindInvalidArgument || appErr.Message != tt.wantErr {
					t.Fatalf("expected invalid argument %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestPageRequestQuery(t *testing.T) {
	q := PageRequest{Page: 3, Size: 10, SortBy: "duration", Desc: true}.Query()
	if q.Offset != 30 || q.Limit != 10 || q.SortBy != "duration" || !q.Desc {
		t.Errorf("unexpected page query %+v", q)
	}
}

func TestPatchKeepsBodyOrder(t *testing.T) {
	var patch Patch
	body := `{"title":"Heat","id":"4","genres":[{"id":1},2],"releaseYear":1995.7}`
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	names := patch.Names()
	want := []string{"title", "id", "genres", "releaseYear"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}

	if _, ok := patch[3].Value.(json.Number); !ok {
		t.Errorf("expected json.Number for releaseYear, got %T", patch[3].Value)
	}
	if list, ok := patch[2].Value.([]any); !ok || len(list) != 2 {
		t.Errorf("expected two genre entries, got %#v", patch[2].Value)
	}
}

func TestPatchRejectsNonObject(t *testing.T) {
	var patch Patch
	if err := json.Unmarshal([]byte(`[1,2]`), &patch); err == nil {
		t.Fatal("expected an error for an array body")
	}
}

func TestIntegerAcceptsNumbersAndNumericStrings(t *testing.T) {
	var body struct {
		Year *Integer `json:"releaseYear"`
	}

	accepted := map[string]int{
		`1999`:           1999,
		`"2001"`:         2001,
		`1995.9`:         1995,
		`2147483647`:     2147483647,
		`-2147483648`:    -2147483648,
		`"2147483647.5"`: 2147483647,
	}
	for raw, want := range accepted {
		if err := json.Unmarshal([]byte(`{"releaseYear":`+raw+`}`), &body); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if int(*body.Year) != want {
			t.Errorf("%s decoded as %d, want %d", raw, *body.Year, want)
		}
	}

	rejected := map[string]string{
		`"soon"`:       "soon",
		`1e19`:         "1e19",
		`"3000000000"`: "3000000000",
		`2147483648`:   "2147483648",
		`-2147483649`:  "-2147483649",
		`1e400`:        "1e400",
	}
	for raw, value := range rejected {
		err := json.Unmarshal([]byte(`{"releaseYear":`+raw+`}`), &body)
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			t.Fatalf("%s: expected UnmarshalTypeError, got %v", raw, err)
		}
		if typeErr.Field != "releaseYear" || typeErr.Value != value || !IsIntegerType(typeErr.Type) {
			t.Errorf("%s: unexpected type error %+v", raw, typeErr)
		}
	}
}

func TestDateRejectsBadFormat(t *testing.T) {
	var body ActorRequest
	err := json.Unmarshal([]byte(`{"name":"Ann","birthDate":"12/01/1980"}`), &body)

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnmarshalTypeError, got %v", err)
	}
	if typeErr.Field != "birthDate" || typeErr.Value != "12/01/1980" || !IsDateType(typeErr.Type) {
		t.Errorf("unexpected type error %+v", typeErr)
	}

	if err := json.Unmarshal([]byte(`{"name":"Ann","birthDate":"1980-12-01"}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.BirthDate.Format("2006-01-02") != "1980-12-01" {
		t.Errorf("unexpected birth date %v", body.BirthDate)
	}
}
