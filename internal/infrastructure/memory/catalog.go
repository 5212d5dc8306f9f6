package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

var (
	_ repository.RadiatorRepository  = (*RadiatorRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
)

// RadiatorRepo catálogo en memoria.
type RadiatorRepo struct{ a access }

func (r *RadiatorRepo) Create(_ context.Context, radiator *entity.Radiator) error {
	return r.a.write(func(st *state) error {
		for _, v := range st.radiators {
			if v.Code == radiator.Code {
				return domain.NewConflictError("radiator", "código duplicado "+radiator.Code)
			}
		}
		st.radiators[radiator.ID] = *radiator
		return nil
	})
}

func (r *RadiatorRepo) GetByID(_ context.Context, id string) (*entity.Radiator, error) {
	var out *entity.Radiator
	r.a.read(func(st *state) {
		if v, ok := st.radiators[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *RadiatorRepo) GetByCode(_ context.Context, code string) (*entity.Radiator, error) {
	var out *entity.Radiator
	r.a.read(func(st *state) {
		for _, v := range st.radiators {
			if v.Code == code {
				v := v
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r *RadiatorRepo) Update(_ context.Context, radiator *entity.Radiator) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.radiators[radiator.ID]; !ok {
			return domain.NewNotFoundError("radiator", radiator.ID)
		}
		st.radiators[radiator.ID] = *radiator
		return nil
	})
}

func (r *RadiatorRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Radiator, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	var list []*entity.Radiator
	r.a.read(func(st *state) {
		for _, v := range st.radiators {
			if search != "" && !strings.Contains(strings.ToLower(v.Brand+" "+v.Code+" "+v.Name), search) {
				continue
			}
			v := v
			list = append(list, &v)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), nil
}

func (r *RadiatorRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.radiators[id]; !ok {
			return domain.NewNotFoundError("radiator", id)
		}
		if referenced(st, id, "") {
			return domain.NewConflictError("radiator", "tiene stock, historial o ventas asociadas")
		}
		delete(st.radiators, id)
		return nil
	})
}

// WarehouseRepo directorio de bodegas en memoria.
type WarehouseRepo struct{ a access }

func (r *WarehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	return r.a.write(func(st *state) error {
		for _, v := range st.warehouses {
			if v.Code == warehouse.Code {
				return domain.NewConflictError("warehouse", "código duplicado "+warehouse.Code)
			}
		}
		st.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.a.read(func(st *state) {
		if v, ok := st.warehouses[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *WarehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.a.read(func(st *state) {
		for _, v := range st.warehouses {
			if v.Code == code {
				v := v
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r *WarehouseRepo) Update(_ context.Context, warehouse *entity.Warehouse) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.warehouses[warehouse.ID]; !ok {
			return domain.NewNotFoundError("warehouse", warehouse.ID)
		}
		st.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	r.a.read(func(st *state) {
		for _, v := range st.warehouses {
			v := v
			list = append(list, &v)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), nil
}

func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return domain.NewNotFoundError("warehouse", id)
		}
		if referenced(st, "", id) {
			return domain.NewConflictError("warehouse", "tiene stock, historial o ventas asociadas")
		}
		delete(st.warehouses, id)
		return nil
	})
}

// referenced indica si un radiador o bodega tiene filas dependientes (política RESTRICT).
func referenced(st *state, radiatorID, warehouseID string) bool {
	match := func(rid, wid string) bool {
		return (radiatorID != "" && rid == radiatorID) || (warehouseID != "" && wid == warehouseID)
	}
	for k := range st.levels {
		if match(k.radiatorID, k.warehouseID) {
			return true
		}
	}
	for _, h := range st.history {
		if match(h.RadiatorID, h.WarehouseID) {
			return true
		}
	}
	for _, items := range st.items {
		for _, it := range items {
			if match(it.RadiatorID, it.WarehouseID) {
				return true
			}
		}
	}
	return false
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ a access }

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	return r.a.write(func(st *state) error {
		if customer.Email != "" {
			for _, v := range st.customers {
				if strings.EqualFold(v.Email, customer.Email) {
					return domain.NewConflictError("customer", "email duplicado")
				}
			}
		}
		st.customers[customer.ID] = *customer
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.a.read(func(st *state) {
		if v, ok := st.customers[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *CustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	var out *entity.Customer
	r.a.read(func(st *state) {
		for _, v := range st.customers {
			if v.Email != "" && strings.EqualFold(v.Email, email) {
				v := v
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r *CustomerRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	var list []*entity.Customer
	r.a.read(func(st *state) {
		for _, v := range st.customers {
			if search != "" && !strings.Contains(strings.ToLower(v.FullName()+" "+v.Email+" "+v.Company), search) {
				continue
			}
			v := v
			list = append(list, &v)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].FullName() < list[j].FullName() })
	return page(list, limit, offset), nil
}

func (r *CustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.customers[customer.ID]; !ok {
			return domain.NewNotFoundError("customer", customer.ID)
		}
		st.customers[customer.ID] = *customer
		return nil
	})
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.NewNotFoundError("customer", id)
		}
		for _, s := range st.sales {
			if s.CustomerID == id {
				return domain.NewConflictError("customer", "tiene ventas registradas")
			}
		}
		delete(st.customers, id)
		return nil
	})
}

// UserRepo usuarios en memoria.
type UserRepo struct{ a access }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.a.write(func(st *state) error {
		for _, v := range st.users {
			if strings.EqualFold(v.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.a.read(func(st *state) {
		if v, ok := st.users[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.a.read(func(st *state) {
		for _, v := range st.users {
			if strings.EqualFold(v.Email, email) {
				v := v
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.users[user.ID]; !ok {
			return domain.ErrUserNotFound
		}
		st.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var list []*entity.User
	r.a.read(func(st *state) {
		for _, v := range st.users {
			v := v
			list = append(list, &v)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return page(list, limit, offset), nil
}

func (r *UserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	return r.a.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.LastLoginAt = &at
		st.users[id] = u
		return nil
	})
}
