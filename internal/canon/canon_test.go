package canon

import (
	"testing"
)

func TestEncode(t *testing.T) {
	input := map[string]interface{}{
		"b": 1,
		"a": "<tag>",
		"c": []int{2, 1, 3},
	}

	expected := `{"a":"<tag>","b":1,"c":[2,1,3]}`

	encoded, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if string(encoded) != expected {
		t.Errorf("Expected %q, got %q", expected, string(encoded))
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `{"a":1}`, want: "{\n    \"a\": 1\n}"},
		{in: `{"z":1,"a":[1,2]}`, want: "{\n    \"z\": 1,\n    \"a\": [\n        1,\n        2\n    ]\n}"},
		{in: `{"name":"Café"}`, want: "{\n    \"name\": \"Café\"\n}"},
		{in: ` {} `, want: "{}"},
		{in: `{"storefront":"Espa\u00f1a","price":1E3}`, want: "{\n    \"storefront\": \"España\",\n    \"price\": 1E3\n}"},
		{in: `{"a":{},"b":[],"c":[{"d":null,"e":true}]}`, want: "{\n    \"a\": {},\n    \"b\": [],\n    \"c\": [\n        {\n            \"d\": null,\n            \"e\": true\n        }\n    ]\n}"},
		{in: `{"html":"<b>&amp;</b>","quote":"a\"b\\c\n"}`, want: "{\n    \"html\": \"<b>&amp;</b>\",\n    \"quote\": \"a\\\"b\\\\c\\n\"\n}"},
		{in: `"top"`, want: `"top"`},
		{in: `{"a":`, wantErr: true},
		{in: "\xff\xfe", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Indent([]byte(tt.in), "    ")
		if (err != nil) != tt.wantErr {
			t.Fatalf("Indent(%q) err=%v", tt.in, err)
		}
		if !tt.wantErr && string(got) != tt.want {
			t.Fatalf("Indent(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}
