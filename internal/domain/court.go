package domain

// Court бронируемый ресурс. Принадлежит площадке (facility), CRUD живет во внешнем сервисе.
type Court struct {
	ID         int64
	FacilityID int64
	Name       string
	Active     bool
}

// Facility площадка с владельцами, которые подтверждают и отклоняют бронирования
type Facility struct {
	ID       int64
	Name     string
	OwnerIDs []int64
}

// IsOwner returns true if userID is one of the facility owners
func (f *Facility) IsOwner(userID int64) bool {
	for _, id := range f.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
