package viewmodel

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
	"github.com/driveway/rental-system/internal/forms"
)

// InventoryViewModel caches the last car listing together with the criteria
// that produced it.
type InventoryViewModel struct {
	state
	inventory ports.InventoryService
	cars      []domain.Car
	filters   domain.CarFilters
	sort      domain.SortOption
}

func NewInventoryViewModel(inventory ports.InventoryService) *InventoryViewModel {
	return &InventoryViewModel{inventory: inventory}
}

func (vm *InventoryViewModel) Cars() []domain.Car {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]domain.Car(nil), vm.cars...)
}

func (vm *InventoryViewModel) Filters() (domain.CarFilters, domain.SortOption) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.filters, vm.sort
}

func (vm *InventoryViewModel) SetFilters(f domain.CarFilters) {
	vm.mu.Lock()
	vm.filters = f
	vm.mu.Unlock()
}

func (vm *InventoryViewModel) SetSort(s domain.SortOption) {
	vm.mu.Lock()
	vm.sort = s
	vm.mu.Unlock()
}

// Fetch loads the whole inventory, ignoring the active criteria.
func (vm *InventoryViewModel) Fetch(ctx context.Context) error {
	vm.begin()
	cars, err := vm.inventory.List(ctx)
	if err == nil {
		vm.setCars(cars)
	}
	return vm.end(err)
}

// Search applies the active filters and sort.
func (vm *InventoryViewModel) Search(ctx context.Context) error {
	filters, sortBy := vm.Filters()

	vm.begin()
	cars, err := vm.inventory.Search(ctx, filters, sortBy)
	if err == nil {
		vm.setCars(cars)
	}
	return vm.end(err)
}

func (vm *InventoryViewModel) Refresh(ctx context.Context) error {
	return vm.Search(ctx)
}

// CarByID does not touch the cached listing.
func (vm *InventoryViewModel) CarByID(ctx context.Context, id string) (*domain.Car, error) {
	car, err := vm.inventory.GetByID(ctx, id)
	if err != nil {
		return nil, vm.fail(err)
	}
	return car, nil
}

func (vm *InventoryViewModel) Popular(ctx context.Context, limit int) ([]domain.Car, error) {
	cars, err := vm.inventory.Popular(ctx, limit)
	if err != nil {
		return nil, vm.fail(err)
	}
	return cars, nil
}

func (vm *InventoryViewModel) Brands(ctx context.Context) ([]string, error) {
	brands, err := vm.inventory.Brands(ctx)
	if err != nil {
		return nil, vm.fail(err)
	}
	return brands, nil
}

func (vm *InventoryViewModel) Create(ctx context.Context, form forms.CarForm) (*domain.Car, error) {
	if err := forms.Validate(form); err != nil {
		return nil, vm.fail(err)
	}

	vm.begin()
	car, err := vm.inventory.Create(ctx, form.Input())
	if err != nil {
		return nil, vm.end(err)
	}
	vm.end(nil)
	return car, vm.Refresh(ctx)
}

func (vm *InventoryViewModel) Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
	if err := forms.Validate(patch); err != nil {
		return nil, vm.fail(err)
	}

	vm.begin()
	car, err := vm.inventory.Update(ctx, id, patch)
	if err != nil {
		return nil, vm.end(err)
	}
	vm.end(nil)
	return car, vm.Refresh(ctx)
}

func (vm *InventoryViewModel) Delete(ctx context.Context, id string) error {
	vm.begin()
	if err := vm.inventory.Delete(ctx, id); err != nil {
		return vm.end(err)
	}
	vm.end(nil)
	return vm.Refresh(ctx)
}

func (vm *InventoryViewModel) setCars(cars []domain.Car) {
	vm.mu.Lock()
	vm.cars = cars
	vm.mu.Unlock()
}
