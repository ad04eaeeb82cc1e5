package toon

import "testing"

func TestClassifyArray(t *testing.T) {
	row := func(kv ...interface{}) Object {
		obj := Object{}
		for i := 0; i < len(kv); i += 2 {
			obj = append(obj, Member{Key: kv[i].(string), Value: kv[i+1].(Value)})
		}
		return obj
	}

	tests := []struct {
		name   string
		input  Array
		shape  arrayShape
		fields []string
	}{
		{"empty", Array{}, shapeEmpty, nil},
		{"primitives", Array{Int(1), String("a"), Null{}}, shapePrimitive, nil},
		{"uniform objects", Array{row("a", Int(1), "b", Int(2)), row("a", Int(3), "b", Int(4))}, shapeTabular, []string{"a", "b"}},
		{"key order differs", Array{row("a", Int(1), "b", Int(2)), row("b", Int(3), "a", Int(4))}, shapeNested, nil},
		{"missing key", Array{row("a", Int(1), "b", Int(2)), row("a", Int(3))}, shapeNested, nil},
		{"nested value", Array{row("a", Array{Int(1)})}, shapeNested, nil},
		{"empty object", Array{Object{}}, shapeNested, nil},
		{"empty key", Array{row("", Int(1))}, shapeNested, nil},
		{"mixed", Array{Int(1), Array{}}, shapeNested, nil},
		{"object then primitive", Array{row("a", Int(1)), Int(2)}, shapeNested, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, fields := classifyArray(tt.input)
			if shape != tt.shape {
				t.Fatalf("shape = %v, want %v", shape, tt.shape)
			}
			if len(fields) != len(tt.fields) {
				t.Fatalf("fields = %v, want %v", fields, tt.fields)
			}
			for i := range fields {
				if fields[i] != tt.fields[i] {
					t.Errorf("fields = %v, want %v", fields, tt.fields)
				}
			}
		})
	}
}
