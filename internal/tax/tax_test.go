package tax

import "testing"

func TestClassifyHomeCountry(t *testing.T) {
	for _, class := range []CustomerClass{Commercial, Private} {
		got, ok := Classify(HomeCountry, class)
		if !ok {
			t.Fatalf("home country must be known")
		}
		if got != ClassDomestic {
			t.Fatalf("home country %s customer: expected %s, got %s", class, ClassDomestic, got)
		}
	}
}

func TestClassifyEUSplitsByCustomerClass(t *testing.T) {
	for _, country := range []string{"Germany", "Belgium", "Austria", "Sweden"} {
		commercial, ok := Classify(country, Commercial)
		if !ok {
			t.Fatalf("%s must be known", country)
		}
		if commercial != ClassEU {
			t.Fatalf("%s commercial: expected %s, got %s", country, ClassEU, commercial)
		}

		private, _ := Classify(country, Private)
		if private != ClassDomestic {
			t.Fatalf("%s private: expected %s, got %s", country, ClassDomestic, private)
		}
	}
}

func TestClassifyRestOfWorld(t *testing.T) {
	for _, country := range []string{"United States", "United Kingdom", "Switzerland", "Japan"} {
		for _, class := range []CustomerClass{Commercial, Private} {
			got, ok := Classify(country, class)
			if !ok {
				t.Fatalf("%s must be known", country)
			}
			if got != ClassRest {
				t.Fatalf("%s %s: expected %s, got %s", country, class, ClassRest, got)
			}
		}
	}
}

func TestClassifyUnknownCountry(t *testing.T) {
	if _, ok := Classify("Atlantis", Commercial); ok {
		t.Fatal("unknown country must not classify")
	}
	if Known("Atlantis") {
		t.Fatal("unknown country must not be known")
	}
	if !Known("France") {
		t.Fatal("France must be known")
	}
}

func TestClassOf(t *testing.T) {
	if ClassOf("Company") != Commercial {
		t.Fatal("Company must be commercial")
	}
	for _, form := range []string{"Mr.", "Mrs.", "", "Family"} {
		if ClassOf(form) != Private {
			t.Fatalf("%q must be private", form)
		}
	}
}

// The table is static configuration; repeated lookups must be stable.
func TestClassifyIsPure(t *testing.T) {
	first, _ := Classify("Germany", Commercial)
	for i := 0; i < 3; i++ {
		again, _ := Classify("Germany", Commercial)
		if again != first {
			t.Fatal("classification must be deterministic")
		}
	}
}
