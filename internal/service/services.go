package service

import (
	"github.com/deppfellow/shopping-list/internal/app"
	"github.com/deppfellow/shopping-list/internal/repository"
)

// Services is a container for all service instances.
//
// Every service runs on the application pool held by app.App.
type Services struct {
	ShoppingList *ShoppingListService
	Report       *ReportService
}

// NewServices wires each repository to the application pool and logger.
func NewServices(a *app.App, repos *repository.Repositories) *Services {
	return &Services{
		ShoppingList: NewShoppingListService(a.DB.Pool, repos.ShoppingList, a.Logger),
		Report:       NewReportService(a.DB.Pool, repos.Report, a.Logger),
	}
}
