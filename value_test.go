package toon

import "testing"

func TestObjectMethods(t *testing.T) {
	obj := Object{}
	obj.Set("b", Int(1))
	obj.Set("a", Int(2))
	obj.Set("b", Int(3))

	if obj.Len() != 2 {
		t.Fatalf("Len = %d, want 2", obj.Len())
	}
	keys := obj.Keys()
	if keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Keys = %v, want [b a]", keys)
	}
	if v, ok := obj.Get("b"); !ok || v != Int(3) {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Error("Get(missing) reported ok")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil and null", nil, Null{}, true},
		{"int and float differ", Int(1), Float(1), false},
		{"NaN equals NaN", Float(nan()), Float(nan()), true},
		{"strings", String("a"), String("a"), true},
		{"array length", Array{Int(1)}, Array{Int(1), Int(2)}, false},
		{"object order matters", Object{{Key: "a", Value: Int(1)}, {Key: "b", Value: Int(2)}},
			Object{{Key: "b", Value: Int(2)}, {Key: "a", Value: Int(1)}}, false},
		{"nested", Object{{Key: "a", Value: Array{Bool(true)}}}, Object{{Key: "a", Value: Array{Bool(true)}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
		prim bool
	}{
		{Null{}, NullKind, true},
		{Bool(true), BoolKind, true},
		{Int(1), IntKind, true},
		{Float(1), FloatKind, true},
		{String(""), StringKind, true},
		{Array{}, ArrayKind, false},
		{Object{}, ObjectKind, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if IsPrimitive(tt.v) != tt.prim {
				t.Errorf("IsPrimitive = %v, want %v", IsPrimitive(tt.v), tt.prim)
			}
		})
	}
}
