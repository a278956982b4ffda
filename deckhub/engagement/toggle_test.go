package engagement

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "like", want: ActionLike},
		{in: "unlike", want: ActionUnlike},
		{in: "favorite", want: ActionFavorite},
		{in: "unfavorite", want: ActionUnfavorite},
		{in: "dislike", wantErr: true},
		{in: "LIKE", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAction) {
					t.Fatalf("ParseAction(%q) error = %v, want ErrInvalidAction", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name        string
		members     []string
		id          string
		action      Action
		want        []string
		wantResult  Result
		wantInvalid bool
	}{
		{
			name:       "like adds member",
			members:    []string{"a"},
			id:         "b",
			action:     ActionLike,
			want:       []string{"a", "b"},
			wantResult: Result{Count: 2, Changed: true, Engaged: true},
		},
		{
			name:       "like twice is a no-op",
			members:    []string{"a", "b"},
			id:         "b",
			action:     ActionLike,
			want:       []string{"a", "b"},
			wantResult: Result{Count: 2, Changed: false, Engaged: true},
		},
		{
			name:       "unlike removes member",
			members:    []string{"a", "b", "c"},
			id:         "b",
			action:     ActionUnlike,
			want:       []string{"a", "c"},
			wantResult: Result{Count: 2, Changed: true, Engaged: false},
		},
		{
			name:       "unlike non-member is a no-op",
			members:    []string{"a"},
			id:         "b",
			action:     ActionUnlike,
			want:       []string{"a"},
			wantResult: Result{Count: 1, Changed: false, Engaged: false},
		},
		{
			name:       "favorite on empty set",
			members:    nil,
			id:         "a",
			action:     ActionFavorite,
			want:       []string{"a"},
			wantResult: Result{Count: 1, Changed: true, Engaged: true},
		},
		{
			name:        "unknown action rejected",
			members:     []string{"a"},
			id:          "b",
			action:      Action("boost"),
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, result, err := Toggle(tt.members, tt.id, tt.action)
			if tt.wantInvalid {
				if !errors.Is(err, ErrInvalidAction) {
					t.Fatalf("Toggle() error = %v, want ErrInvalidAction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Toggle() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Toggle() members = %v, want %v", got, tt.want)
			}
			if result != tt.wantResult {
				t.Errorf("Toggle() result = %+v, want %+v", result, tt.wantResult)
			}
		})
	}
}

// Toggling the same direction any number of times lands in the same state
// as toggling once.
func TestToggleIdempotent(t *testing.T) {
	members := []string{"x"}
	for i := 0; i < 5; i++ {
		var err error
		members, _, err = Toggle(members, "y", ActionLike)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
	}
	if !reflect.DeepEqual(members, []string{"x", "y"}) {
		t.Fatalf("repeated likes produced %v, want [x y]", members)
	}

	for i := 0; i < 5; i++ {
		members, _, _ = Toggle(members, "y", ActionUnlike)
	}
	if !reflect.DeepEqual(members, []string{"x"}) {
		t.Fatalf("repeated unlikes produced %v, want [x]", members)
	}
}

func TestRemoveDoesNotAliasSource(t *testing.T) {
	members := []string{"a", "b", "c"}
	removed, changed := Remove(members, "a")
	if !changed {
		t.Fatal("Remove() changed = false, want true")
	}
	removed[0] = "z"
	if members[1] != "b" {
		t.Errorf("Remove() mutated source slice: %v", members)
	}
}

func TestToggleWorksOverInt64(t *testing.T) {
	favorites := []int64{10, 20}
	favorites, result, err := Toggle(favorites, int64(30), ActionFavorite)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if result.Count != 3 || !Has(favorites, int64(30)) {
		t.Errorf("Toggle() favorites = %v, result = %+v", favorites, result)
	}
}
