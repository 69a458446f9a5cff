package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	ShoppingList *ShoppingListRepository
	Report       *ReportRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		ShoppingList: NewShoppingListRepository(),
		Report:       NewReportRepository(),
	}
}
