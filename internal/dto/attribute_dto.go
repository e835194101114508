package dto

// AttributeRequest is the body of attribute create and update.
type AttributeRequest struct {
	Key   string `json:"key"   validate:"required,min=3,max=255,catalogname" example:"color"`
	Value string `json:"value" validate:"required,min=3,max=255,attrvalue" example:"black"`
}

func (r *AttributeRequest) Normalize() {
	r.Key = normalizeName(r.Key)
	r.Value = normalizeName(r.Value)
}
