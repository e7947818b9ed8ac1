package anonymizer

import (
	"strings"
	"testing"
)

func TestAnonymize_EmailAndPhone(t *testing.T) {
	a := New()
	in := "Contact claire.durand@acme.fr or call 06 12 34 56 78."

	out := a.Anonymize(in)

	if strings.Contains(out, "claire.durand@acme.fr") {
		t.Errorf("email still visible: %s", out)
	}
	if strings.Contains(out, "06 12 34 56 78") {
		t.Errorf("phone still visible: %s", out)
	}
	if !strings.Contains(out, "[EMAIL_1]") || !strings.Contains(out, "[PHONE_1]") {
		t.Errorf("expected placeholders, got: %s", out)
	}
}

func TestAnonymize_StablePlaceholders(t *testing.T) {
	a := New()

	first := a.Anonymize("write to bob@example.com")
	second := a.Anonymize("again: bob@example.com, and new: eve@example.com")

	if !strings.Contains(first, "[EMAIL_1]") {
		t.Fatalf("unexpected first pass: %s", first)
	}
	if !strings.Contains(second, "[EMAIL_1]") || !strings.Contains(second, "[EMAIL_2]") {
		t.Errorf("placeholders not stable across calls: %s", second)
	}
}

func TestAnonymize_RegisteredNamesLongestFirst(t *testing.T) {
	a := New()
	a.RegisterName("Acme Industries", EntityCompany)
	a.RegisterName("Acme", EntityCompany)

	out := a.Anonymize("Acme Industries is a subsidiary of Acme.")

	if strings.Contains(out, "Acme Industries") {
		t.Errorf("long name not masked: %s", out)
	}
	// "Acme Industries" must be replaced as a whole, not as "Acme"+rest.
	if strings.Contains(out, "Industries") {
		t.Errorf("partial masking of long name: %s", out)
	}
}

func TestAnonymize_IgnoresShortNames(t *testing.T) {
	a := New()
	a.RegisterName("Al", EntityPerson)

	out := a.Anonymize("Al went to the gallery.")
	if out != "Al went to the gallery." {
		t.Errorf("two-letter name should not be masked: %s", out)
	}
}

func TestDeanonymize_RoundTrip(t *testing.T) {
	a := New()
	a.RegisterName("Claire Durand", EntityPerson)
	in := "Claire Durand (claire@acme.fr, SIRET 123 456 789 00012) leads the project."

	masked := a.Anonymize(in)
	if masked == in {
		t.Fatal("nothing was masked")
	}

	restored := a.Deanonymize(masked)
	if restored != in {
		t.Errorf("round trip failed:\n in: %s\nout: %s", in, restored)
	}
}

func TestMappings_Recorded(t *testing.T) {
	a := New()
	a.Anonymize("mail x@y.fr")

	maps := a.Mappings()
	if len(maps) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(maps))
	}
	m := maps[0]
	if m.EntityType != EntityEmail || m.Original != "x@y.fr" || !m.Active {
		t.Errorf("unexpected mapping: %+v", m)
	}
}
