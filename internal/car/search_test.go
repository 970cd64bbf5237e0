package car

import (
	"reflect"
	"strings"
	"testing"
)

func testCatalog() []Car {
	return []Car{
		{VIN: "V1", Type: "Sedan", Brand: "Honda", Model: "Accord", Description: "Comfortable mid-size sedan"},
		{VIN: "V2", Type: "SUV", Brand: "Toyota", Model: "RAV4", Description: "Compact SUV with AWD"},
		{VIN: "V3", Type: "Sedan", Brand: "Toyota", Model: "Camry", Description: "Reliable family car"},
		{VIN: "V4", Type: "Truck", Brand: "Ford", Model: "F-150", Description: "Full-size pickup"},
	}
}

func TestSearchMatchesAnyTextField(t *testing.T) {
	cars := testCatalog()

	got := Search(cars, "toyota")
	if len(got) != 2 {
		t.Fatalf("expected 2 results for brand keyword, got %d", len(got))
	}
	for _, c := range got {
		hit := strings.Contains(strings.ToLower(c.Type), "toyota") ||
			strings.Contains(strings.ToLower(c.Brand), "toyota") ||
			strings.Contains(strings.ToLower(c.Model), "toyota") ||
			strings.Contains(strings.ToLower(c.Description), "toyota")
		if !hit {
			t.Fatalf("result %s does not contain keyword in any searched field", c.VIN)
		}
	}

	// description 也参与匹配
	got = Search(cars, "pickup")
	if len(got) != 1 || got[0].VIN != "V4" {
		t.Fatalf("expected description match to return V4, got %+v", got)
	}

	// 大小写不敏感
	if len(Search(cars, "SEDAN")) != 2 {
		t.Fatalf("expected case-insensitive type match")
	}
}

func TestSearchEmptyKeywordReturnsInput(t *testing.T) {
	cars := testCatalog()
	got := Search(cars, "")
	if !reflect.DeepEqual(got, cars) {
		t.Fatalf("empty keyword should return input unchanged")
	}
	if len(Search(cars, "   ")) != len(cars) {
		t.Fatalf("blank keyword should return input unchanged")
	}
}

func TestFilterByMultiple(t *testing.T) {
	cars := testCatalog()

	// 两个条件都为空：不过滤
	if got := FilterByMultiple(cars, nil, nil); len(got) != len(cars) {
		t.Fatalf("no filters should return all cars, got %d", len(got))
	}

	// 只按类型
	got := FilterByMultiple(cars, []string{"Sedan"}, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 sedans, got %d", len(got))
	}

	// 类型为空时品牌单独生效
	got = FilterByMultiple(cars, nil, []string{"Toyota", "Ford"})
	if len(got) != 3 {
		t.Fatalf("expected 3 cars for Toyota/Ford, got %d", len(got))
	}

	// 类型与品牌是 AND 关系
	got = FilterByMultiple(cars, []string{"Sedan"}, []string{"Toyota"})
	if len(got) != 1 || got[0].VIN != "V3" {
		t.Fatalf("expected only V3 for Sedan+Toyota, got %+v", got)
	}
}

func TestSuggestionsOrderAndTagging(t *testing.T) {
	cars := []Car{
		{Type: "Sedan", Brand: "Seat", Model: "Leon"},
		{Type: "SUV", Brand: "Toyota", Model: "Seadancer"},
		{Type: "Sedan", Brand: "Honda", Model: "Accord"},
	}

	got := Suggestions(cars, "se")
	want := []string{"Sedan (Type)", "Seat", "Seadancer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected types then brands then models %v, got %v", want, got)
	}
}

func TestSuggestionsEmptyQuery(t *testing.T) {
	got := Suggestions(testCatalog(), "")
	if len(got) != 0 {
		t.Fatalf("empty query should return no suggestions, got %v", got)
	}
}

func TestSuggestionsDedup(t *testing.T) {
	// 同名同时出现在品牌和车型里：跨组去重后只保留一个
	cars := []Car{
		{Type: "Sedan", Brand: "Alpha", Model: "Alpha"},
		{Type: "SUV", Brand: "Alpha", Model: "Beta"},
	}
	got := Suggestions(cars, "alpha")
	if !reflect.DeepEqual(got, []string{"Alpha"}) {
		t.Fatalf("expected cross-group dedup to [Alpha], got %v", got)
	}
}

func TestAllTypesAndBrands(t *testing.T) {
	cars := testCatalog()
	if got := AllTypes(cars); !reflect.DeepEqual(got, []string{"Sedan", "SUV", "Truck"}) {
		t.Fatalf("unexpected types: %v", got)
	}
	if got := AllBrands(cars); !reflect.DeepEqual(got, []string{"Honda", "Toyota", "Ford"}) {
		t.Fatalf("unexpected brands: %v", got)
	}
}
