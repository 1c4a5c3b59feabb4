package domain

// Sample schemas shipped with the engine, registered by `schema seed`.

// UserSchema describes a synthetic user account.
func UserSchema() Schema {
	return Schema{
		Name:        "user",
		Version:     "1.0",
		Description: "synthetic user accounts",
		Fields: []FieldSpec{
			{Name: "id", Type: TypeUUID, Required: true, FakerProvider: "uuid"},
			{Name: "username", Type: TypeString, Required: true, MinLength: IntPtr(3), MaxLength: IntPtr(20), FakerProvider: "username"},
			{Name: "email", Type: TypeEmail, Required: true, FakerProvider: "email", Validator: "email"},
			{Name: "password", Type: TypeString, Required: true, MinLength: IntPtr(8), MaxLength: IntPtr(50)},
			{Name: "first_name", Type: TypeString, Required: true, FakerProvider: "first_name"},
			{Name: "last_name", Type: TypeString, Required: true, FakerProvider: "last_name"},
			{Name: "phone", Type: TypePhone, Required: true, FakerProvider: "phone"},
			{Name: "age", Type: TypeInteger, Required: true, MinValue: FloatPtr(18), MaxValue: FloatPtr(100)},
			{Name: "is_active", Type: TypeBoolean, Required: true},
			{Name: "role", Type: TypeString, Required: true, Choices: []any{"user", "admin", "moderator"}},
			{Name: "created_at", Type: TypeDateTime, Required: true},
		},
	}
}

// ProductSchema describes a synthetic catalog product.
func ProductSchema() Schema {
	return Schema{
		Name:        "product",
		Version:     "1.0",
		Description: "synthetic catalog products",
		Fields: []FieldSpec{
			{Name: "id", Type: TypeUUID, Required: true, FakerProvider: "uuid"},
			{Name: "name", Type: TypeString, Required: true, MinLength: IntPtr(5), MaxLength: IntPtr(100)},
			{Name: "description", Type: TypeString, Required: false, MaxLength: IntPtr(500), DefaultValue: ""},
			{Name: "price", Type: TypeFloat, Required: true, MinValue: FloatPtr(0.01), MaxValue: FloatPtr(9999.99)},
			{Name: "category", Type: TypeString, Required: true, Choices: []any{"electronics", "clothing", "home", "books", "sports", "beauty"}},
			{Name: "stock", Type: TypeInteger, Required: true, MinValue: FloatPtr(0), MaxValue: FloatPtr(1000)},
			{Name: "brand", Type: TypeString, Required: true, FakerProvider: "company"},
			{Name: "is_available", Type: TypeBoolean, Required: true},
			{Name: "created_at", Type: TypeDateTime, Required: true},
		},
	}
}
