package models

// Tag is a label notes reference by id. Deleting a tag never deletes
// notes; dangling tag ids on a note are treated as absent at render time.
type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Clone returns an independent copy of the tag.
func (t *Tag) Clone() *Tag {
	c := *t
	return &c
}
