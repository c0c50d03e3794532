package entities

import "time"

// StoredTemplate describes a template file kept by a TemplateStore.
type StoredTemplate struct {
	Name      string
	Size      int64
	UpdatedAt time.Time
}
