package test

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// MemoryStore is an in-memory repository.Store. Atomic restores a snapshot when fn fails.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data memoryData
	fail map[string]error

	// Now stamps order and payment dates.
	Now func() time.Time
}

type memoryData struct {
	nextID     int64
	users      map[int64]model.User
	items      map[int64]model.Item
	coupons    map[int64]model.Coupon
	addresses  map[int64]model.Address
	payments   map[int64]model.Payment
	orders     map[int64]model.Order
	orderItems map[int64]model.OrderItem
}

func (d memoryData) clone() memoryData {
	return memoryData{
		nextID:     d.nextID,
		users:      maps.Clone(d.users),
		items:      maps.Clone(d.items),
		coupons:    maps.Clone(d.coupons),
		addresses:  maps.Clone(d.addresses),
		payments:   maps.Clone(d.payments),
		orders:     maps.Clone(d.orders),
		orderItems: maps.Clone(d.orderItems),
	}
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: memoryData{
			users:      map[int64]model.User{},
			items:      map[int64]model.Item{},
			coupons:    map[int64]model.Coupon{},
			addresses:  map[int64]model.Address{},
			payments:   map[int64]model.Payment{},
			orders:     map[int64]model.Order{},
			orderItems: map[int64]model.OrderItem{},
		},
		fail: map[string]error{},
		Now:  time.Now,
	}
}

// Fail makes the named operation, e.g. "Orders.Complete", return err.
func (s *MemoryStore) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

func (s *MemoryStore) failure(op string) error {
	return s.fail[op]
}

func (s *MemoryStore) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

// Atomic serializes fn and rolls the store back when fn returns an error.
func (s *MemoryStore) Atomic(ctx context.Context, fn func(repository.Factory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	if err := s.failure("Atomic"); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) Users() repository.UserRepository           { return memoryUsers{s} }
func (s *MemoryStore) Items() repository.ItemRepository           { return memoryItems{s} }
func (s *MemoryStore) Coupons() repository.CouponRepository       { return memoryCoupons{s} }
func (s *MemoryStore) Orders() repository.OrderRepository         { return memoryOrders{s} }
func (s *MemoryStore) OrderItems() repository.OrderItemRepository { return memoryOrderItems{s} }
func (s *MemoryStore) Addresses() repository.AddressRepository    { return memoryAddresses{s} }
func (s *MemoryStore) Payments() repository.PaymentRepository     { return memoryPayments{s} }

// SeedUser stores a user and returns it.
func (s *MemoryStore) SeedUser(login, email string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := model.User{ID: s.id(), Login: login, Email: email, PasswordHash: "hash:password", CreatedAt: s.Now()}
	s.data.users[u.ID] = u
	return u
}

// SeedItem stores a catalog item priced in the given decimal string.
func (s *MemoryStore) SeedItem(title, slug, price string) model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := model.Item{ID: s.id(), Title: title, Slug: slug, Price: decimal.RequireFromString(price)}
	s.data.items[it.ID] = it
	return it
}

// SeedCoupon stores a coupon.
func (s *MemoryStore) SeedCoupon(code, amount string) model.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Coupon{ID: s.id(), Code: code, Amount: decimal.RequireFromString(amount)}
	s.data.coupons[c.ID] = c
	return c
}

// SeedAddress stores an address.
func (s *MemoryStore) SeedAddress(a model.Address) model.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	s.data.addresses[a.ID] = a
	return a
}

// AllOrders returns every order sorted by id.
func (s *MemoryStore) AllOrders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.data.orders, func(o model.Order) int64 { return o.ID })
}

// AllOrderItems returns every order item sorted by id.
func (s *MemoryStore) AllOrderItems() []model.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.data.orderItems, func(oi model.OrderItem) int64 { return oi.ID })
}

// AllAddresses returns every address sorted by id.
func (s *MemoryStore) AllAddresses() []model.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.data.addresses, func(a model.Address) int64 { return a.ID })
}

// AllPayments returns every payment sorted by id.
func (s *MemoryStore) AllPayments() []model.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.data.payments, func(p model.Payment) int64 { return p.ID })
}

func sortedValues[T any](m map[int64]T, key func(T) int64) []T {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b T) int {
		return int(key(a) - key(b))
	})
	return out
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(ctx context.Context, login, email, passwordHash string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Users.Create"); err != nil {
		return nil, err
	}
	for _, u := range r.s.data.users {
		if u.Login == login {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	u := model.User{ID: r.s.id(), Login: login, Email: email, PasswordHash: passwordHash, CreatedAt: r.s.Now()}
	r.s.data.users[u.ID] = u
	return &u, nil
}

func (r memoryUsers) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Users.GetByLogin"); err != nil {
		return nil, err
	}
	for _, u := range r.s.data.users {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Users.GetByID"); err != nil {
		return nil, err
	}
	if u, ok := r.s.data.users[id]; ok {
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

type memoryItems struct{ s *MemoryStore }

func (r memoryItems) List(ctx context.Context) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.List"); err != nil {
		return nil, err
	}
	return sortedValues(r.s.data.items, func(it model.Item) int64 { return it.ID }), nil
}

func (r memoryItems) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.GetBySlug"); err != nil {
		return nil, err
	}
	for _, it := range r.s.data.items {
		if it.Slug == slug {
			return &it, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

type memoryCoupons struct{ s *MemoryStore }

func (r memoryCoupons) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Coupons.GetByCode"); err != nil {
		return nil, err
	}
	for _, c := range r.s.data.coupons {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryCoupons) GetByID(ctx context.Context, id int64) (*model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.data.coupons[id]; ok {
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) open(userID int64) (*model.Order, error) {
	for _, o := range r.s.data.orders {
		if o.UserID == userID && !o.Ordered {
			return &o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryOrders) GetOpen(ctx context.Context, userID int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Orders.GetOpen"); err != nil {
		return nil, err
	}
	return r.open(userID)
}

func (r memoryOrders) LockOpen(ctx context.Context, userID int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Orders.LockOpen"); err != nil {
		return nil, err
	}
	return r.open(userID)
}

func (r memoryOrders) CreateOpen(ctx context.Context, userID int64) (*model.Order, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Orders.CreateOpen"); err != nil {
		return nil, false, err
	}
	if o, err := r.open(userID); err == nil {
		return o, false, nil
	}
	o := model.Order{ID: r.s.id(), UserID: userID, StartDate: r.s.Now()}
	r.s.data.orders[o.ID] = o
	return &o, true, nil
}

func (r memoryOrders) LockByID(ctx context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Orders.LockByID"); err != nil {
		return nil, err
	}
	if o, ok := r.s.data.orders[id]; ok {
		return &o, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryOrders) ListCompleted(ctx context.Context, userID int64) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Orders.ListCompleted"); err != nil {
		return nil, err
	}
	var out []model.Order
	for _, o := range r.s.data.orders {
		if o.UserID == userID && o.Ordered {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b model.Order) int {
		return b.OrderedDate.Compare(*a.OrderedDate)
	})
	return out, nil
}

func (r memoryOrders) update(op string, id int64, fn func(*model.Order)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(op); err != nil {
		return err
	}
	o, ok := r.s.data.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	fn(&o)
	r.s.data.orders[id] = o
	return nil
}

func (r memoryOrders) SetAddress(ctx context.Context, orderID, addressID int64) error {
	return r.update("Orders.SetAddress", orderID, func(o *model.Order) { o.AddressID = &addressID })
}

func (r memoryOrders) SetCoupon(ctx context.Context, orderID, couponID int64) error {
	return r.update("Orders.SetCoupon", orderID, func(o *model.Order) { o.CouponID = &couponID })
}

func (r memoryOrders) Complete(ctx context.Context, orderID, paymentID int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Orders.Complete"); err != nil {
		return err
	}
	o, ok := r.s.data.orders[orderID]
	if !ok || o.Ordered {
		return domainErrors.ErrNotFound
	}
	o.Ordered = true
	o.PaymentID = &paymentID
	o.OrderedDate = &at
	r.s.data.orders[orderID] = o
	for id, oi := range r.s.data.orderItems {
		if oi.OrderID == orderID {
			oi.Ordered = true
			r.s.data.orderItems[id] = oi
		}
	}
	return nil
}

type memoryOrderItems struct{ s *MemoryStore }

func (r memoryOrderItems) findOpen(userID, itemID int64) (*model.OrderItem, error) {
	for _, oi := range r.s.data.orderItems {
		if oi.UserID == userID && oi.ItemID == itemID && !oi.Ordered {
			oi.Item = r.s.data.items[oi.ItemID]
			return &oi, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryOrderItems) GetOrCreate(ctx context.Context, userID, itemID int64) (*model.OrderItem, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("OrderItems.GetOrCreate"); err != nil {
		return nil, false, err
	}
	if oi, err := r.findOpen(userID, itemID); err == nil {
		return oi, false, nil
	}
	oi := model.OrderItem{ID: r.s.id(), UserID: userID, ItemID: itemID, Quantity: 1}
	r.s.data.orderItems[oi.ID] = oi
	oi.Item = r.s.data.items[itemID]
	return &oi, true, nil
}

func (r memoryOrderItems) FindOpen(ctx context.Context, userID, itemID int64) (*model.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("OrderItems.FindOpen"); err != nil {
		return nil, err
	}
	return r.findOpen(userID, itemID)
}

func (r memoryOrderItems) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("OrderItems.ListByOrder"); err != nil {
		return nil, err
	}
	var out []model.OrderItem
	for _, oi := range r.s.data.orderItems {
		if oi.OrderID == orderID {
			oi.Item = r.s.data.items[oi.ItemID]
			out = append(out, oi)
		}
	}
	slices.SortFunc(out, func(a, b model.OrderItem) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r memoryOrderItems) update(op string, id int64, fn func(*model.OrderItem)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(op); err != nil {
		return err
	}
	oi, ok := r.s.data.orderItems[id]
	if !ok || oi.Ordered {
		return domainErrors.ErrNotFound
	}
	fn(&oi)
	r.s.data.orderItems[id] = oi
	return nil
}

func (r memoryOrderItems) Attach(ctx context.Context, orderItemID, orderID int64) error {
	return r.update("OrderItems.Attach", orderItemID, func(oi *model.OrderItem) { oi.OrderID = orderID })
}

func (r memoryOrderItems) SetQuantity(ctx context.Context, orderItemID int64, quantity int) error {
	return r.update("OrderItems.SetQuantity", orderItemID, func(oi *model.OrderItem) { oi.Quantity = quantity })
}

func (r memoryOrderItems) Delete(ctx context.Context, orderItemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("OrderItems.Delete"); err != nil {
		return err
	}
	oi, ok := r.s.data.orderItems[orderItemID]
	if !ok || oi.Ordered {
		return domainErrors.ErrNotFound
	}
	delete(r.s.data.orderItems, orderItemID)
	return nil
}

type memoryAddresses struct{ s *MemoryStore }

func (r memoryAddresses) Create(ctx context.Context, address *model.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Addresses.Create"); err != nil {
		return err
	}
	if address.Default {
		for _, a := range r.s.data.addresses {
			if a.UserID == address.UserID && a.Default {
				return domainErrors.ErrAlreadyExists
			}
		}
	}
	address.ID = r.s.id()
	r.s.data.addresses[address.ID] = *address
	return nil
}

func (r memoryAddresses) ClearDefault(ctx context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Addresses.ClearDefault"); err != nil {
		return err
	}
	for id, a := range r.s.data.addresses {
		if a.UserID == userID && a.Default {
			a.Default = false
			r.s.data.addresses[id] = a
		}
	}
	return nil
}

func (r memoryAddresses) GetDefault(ctx context.Context, userID int64) (*model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Addresses.GetDefault"); err != nil {
		return nil, err
	}
	for _, a := range r.s.data.addresses {
		if a.UserID == userID && a.Default {
			return &a, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryAddresses) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.data.addresses[id]; ok {
		return &a, nil
	}
	return nil, domainErrors.ErrNotFound
}

type memoryPayments struct{ s *MemoryStore }

func (r memoryPayments) Create(ctx context.Context, payment *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Payments.Create"); err != nil {
		return err
	}
	for _, p := range r.s.data.payments {
		if p.ChargeID == payment.ChargeID {
			return domainErrors.ErrAlreadyExists
		}
	}
	payment.ID = r.s.id()
	if payment.Timestamp.IsZero() {
		payment.Timestamp = r.s.Now()
	}
	r.s.data.payments[payment.ID] = *payment
	return nil
}

func (r memoryPayments) GetByChargeID(ctx context.Context, chargeID string) (*model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Payments.GetByChargeID"); err != nil {
		return nil, err
	}
	for _, p := range r.s.data.payments {
		if p.ChargeID == chargeID {
			return &p, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

var _ repository.Store = (*MemoryStore)(nil)
