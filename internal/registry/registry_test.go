package registry

import (
	"image"
	"strings"
	"testing"

	"github.com/LaMitaOne/glint/internal/canvas"
)

// stubEffect is a minimal Effect for exercising the registry.
type stubEffect struct {
	id    string
	title string
}

func (s *stubEffect) ID() string    { return s.id }
func (s *stubEffect) Title() string { return s.title }

func (s *stubEffect) Update(dt float64) {}

func (s *stubEffect) Render(dst *canvas.Surface, area image.Rectangle, elapsed float64) {}

func stubFactory(id, title string) Factory {
	return func() Effect {
		return &stubEffect{id: id, title: title}
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("reg_test_alpha", stubFactory("reg_test_alpha", "Alpha"))

	if !Exists("reg_test_alpha") {
		t.Error("Exists() = false for a registered effect")
	}

	e, err := Create("reg_test_alpha")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if e.ID() != "reg_test_alpha" {
		t.Errorf("created effect ID = %q, expected %q", e.ID(), "reg_test_alpha")
	}

	// Factories must produce fresh instances
	e2, _ := Create("reg_test_alpha")
	if e == e2 {
		t.Error("Create() returned the same instance twice")
	}
}

func TestCreateUnknown(t *testing.T) {
	if Exists("reg_test_nope") {
		t.Fatal("Exists() = true for an effect that was never registered")
	}

	e, err := Create("reg_test_nope")
	if err == nil {
		t.Fatal("Create() with unknown ID should fail")
	}
	if e != nil {
		t.Errorf("Create() with unknown ID returned %v, expected nil", e)
	}
	if !strings.Contains(err.Error(), "reg_test_nope") {
		t.Errorf("error %q should name the unknown ID", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("reg_test_dup", stubFactory("reg_test_dup", "Dup"))

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate ID should panic")
		}
	}()
	Register("reg_test_dup", stubFactory("reg_test_dup", "Dup Again"))
}

func TestListSortedWithTitles(t *testing.T) {
	Register("reg_test_zz", stubFactory("reg_test_zz", "Last"))
	Register("reg_test_aa", stubFactory("reg_test_aa", "First"))

	infos := List()
	if len(infos) < 2 {
		t.Fatalf("List() returned %d entries, expected at least 2", len(infos))
	}

	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID > infos[i].ID {
			t.Errorf("List() not sorted: %q before %q", infos[i-1].ID, infos[i].ID)
		}
	}

	found := false
	for _, info := range infos {
		if info.ID == "reg_test_aa" {
			found = true
			if info.Title != "First" {
				t.Errorf("Title for reg_test_aa = %q, expected %q", info.Title, "First")
			}
		}
	}
	if !found {
		t.Error("List() is missing a registered effect")
	}
}
