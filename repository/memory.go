package repository

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"roomrent/constants"
	"roomrent/models"
)

// MemoryStore keeps everything in process. Transactions are serialized and
// roll back by restoring a snapshot. It counts calls per method and can be
// told to fail them, which is what the service tests rely on.
type MemoryStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	data     *memoryData
	calls    map[string]int
	failures map[string]*failure
	clock    time.Time
}

type failure struct {
	err       error
	remaining int // negative: forever
}

type memoryData struct {
	users           map[uint]models.User
	areas           map[uint]models.Area
	facilities      map[uint]models.Facility
	houses          map[uint]models.House
	houseFacilities map[uint][]uint
	images          map[uint][]models.HouseImage
	orders          map[uint]models.Order
	seq             map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: &memoryData{
			users:           map[uint]models.User{},
			areas:           map[uint]models.Area{},
			facilities:      map[uint]models.Facility{},
			houses:          map[uint]models.House{},
			houseFacilities: map[uint][]uint{},
			images:          map[uint][]models.HouseImage{},
			orders:          map[uint]models.Order{},
			seq:             map[string]uint{},
		},
		calls:    map[string]int{},
		failures: map[string]*failure{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// SeedDefaults fills areas and facilities like AutoMigrate does.
func (s *MemoryStore) SeedDefaults() {
	for _, name := range DefaultAreas {
		s.AddArea(name)
	}
	for _, name := range DefaultFacilities {
		s.AddFacility(name)
	}
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		users:           make(map[uint]models.User, len(d.users)),
		areas:           make(map[uint]models.Area, len(d.areas)),
		facilities:      make(map[uint]models.Facility, len(d.facilities)),
		houses:          make(map[uint]models.House, len(d.houses)),
		houseFacilities: make(map[uint][]uint, len(d.houseFacilities)),
		images:          make(map[uint][]models.HouseImage, len(d.images)),
		orders:          make(map[uint]models.Order, len(d.orders)),
		seq:             make(map[string]uint, len(d.seq)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.areas {
		c.areas[k] = v
	}
	for k, v := range d.facilities {
		c.facilities[k] = v
	}
	for k, v := range d.houses {
		c.houses[k] = v
	}
	for k, v := range d.houseFacilities {
		c.houseFacilities[k] = append([]uint(nil), v...)
	}
	for k, v := range d.images {
		c.images[k] = append([]models.HouseImage(nil), v...)
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	return c
}

func (d *memoryData) next(table string) uint {
	d.seq[table]++
	return d.seq[table]
}

// tick hands out strictly increasing timestamps so ordering is deterministic.
func (s *MemoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// Fail makes the next times calls of op return err. times < 0 fails forever.
func (s *MemoryStore) Fail(op string, err error, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = &failure{err: err, remaining: times}
}

// Calls reports how often op was invoked.
func (s *MemoryStore) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls reports invocations across all methods.
func (s *MemoryStore) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// ResetCalls zeroes the counters.
func (s *MemoryStore) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = map[string]int{}
}

// enter must be called with mu held.
func (s *MemoryStore) enter(op string) error {
	s.calls[op]++
	f, ok := s.failures[op]
	if !ok {
		return nil
	}
	if f.remaining > 0 {
		f.remaining--
		if f.remaining == 0 {
			delete(s.failures, op)
		}
	}
	return f.err
}

func (s *MemoryStore) AddUser(u models.User) models.User {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.data.next("users")
	} else if u.ID > s.data.seq["users"] {
		s.data.seq["users"] = u.ID
	}
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	s.data.users[u.ID] = u
	return u
}

func (s *MemoryStore) AddArea(name string) models.Area {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.Area{ID: s.data.next("areas"), Name: name}
	s.data.areas[a.ID] = a
	return a
}

func (s *MemoryStore) AddFacility(name string) models.Facility {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	f := models.Facility{ID: s.data.next("facilities"), Name: name}
	s.data.facilities[f.ID] = f
	return f
}

func (s *MemoryStore) Areas(ctx context.Context) ([]models.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("Areas"); err != nil {
		return nil, err
	}
	areas := make([]models.Area, 0, len(s.data.areas))
	for _, a := range s.data.areas {
		areas = append(areas, a)
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].ID < areas[j].ID })
	return areas, nil
}

func (s *MemoryStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UserByID"); err != nil {
		return nil, err
	}
	u, ok := s.data.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// summary attaches area and owner, like the Preloads of the gorm store.
func (s *MemoryStore) summary(h models.House) models.House {
	h.Area = s.data.areas[h.AreaID]
	h.User = s.data.users[h.UserID]
	return h
}

func (s *MemoryStore) HouseByID(ctx context.Context, id uint) (*models.House, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("HouseByID"); err != nil {
		return nil, err
	}
	h, ok := s.data.houses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (s *MemoryStore) HouseDetail(ctx context.Context, id uint) (*models.House, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("HouseDetail"); err != nil {
		return nil, err
	}
	h, ok := s.data.houses[id]
	if !ok {
		return nil, ErrNotFound
	}
	h = s.summary(h)
	for _, fid := range s.data.houseFacilities[id] {
		h.Facilities = append(h.Facilities, s.data.facilities[fid])
	}
	h.Images = append([]models.HouseImage(nil), s.data.images[id]...)
	return &h, nil
}

func (s *MemoryStore) HouseReviews(ctx context.Context, houseID uint, limit int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("HouseReviews"); err != nil {
		return nil, err
	}
	var orders []models.Order
	for _, o := range s.data.orders {
		if o.HouseID == houseID && o.Status == models.OrderStatusComplete && o.Comment != "" {
			o.User = s.data.users[o.UserID]
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].UpdatedAt.Equal(orders[j].UpdatedAt) {
			return orders[i].UpdatedAt.After(orders[j].UpdatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	if limit >= 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *MemoryStore) TopHouses(ctx context.Context, limit int) ([]models.House, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("TopHouses"); err != nil {
		return nil, err
	}
	houses := s.sortedHouses(constants.SortBooking, func(models.House) bool { return true })
	if limit >= 0 && len(houses) > limit {
		houses = houses[:limit]
	}
	return houses, nil
}

func (s *MemoryStore) sortedHouses(sortKey string, keep func(models.House) bool) []models.House {
	var houses []models.House
	for _, h := range s.data.houses {
		if keep(h) {
			houses = append(houses, s.summary(h))
		}
	}
	sort.Slice(houses, func(i, j int) bool {
		a, b := houses[i], houses[j]
		switch sortKey {
		case constants.SortBooking:
			if a.OrderCount != b.OrderCount {
				return a.OrderCount > b.OrderCount
			}
			return a.ID > b.ID
		case constants.SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.ID < b.ID
		case constants.SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return a.ID > b.ID
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	})
	return houses
}

func (s *MemoryStore) SearchHouses(ctx context.Context, q HouseQuery) ([]models.House, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("SearchHouses"); err != nil {
		return nil, 0, err
	}
	excluded := make(map[uint]bool, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		excluded[id] = true
	}
	houses := s.sortedHouses(q.Sort, func(h models.House) bool {
		return (q.AreaID == 0 || h.AreaID == q.AreaID) && !excluded[h.ID]
	})
	total := int64(len(houses))
	if q.Offset >= len(houses) {
		return nil, total, nil
	}
	houses = houses[q.Offset:]
	if q.Limit > 0 && len(houses) > q.Limit {
		houses = houses[:q.Limit]
	}
	return houses, total, nil
}

func (s *MemoryStore) HousesByOwner(ctx context.Context, ownerID uint) ([]models.House, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("HousesByOwner"); err != nil {
		return nil, err
	}
	return s.sortedHouses(constants.SortNewest, func(h models.House) bool { return h.UserID == ownerID }), nil
}

func (s *MemoryStore) createHouse(ctx context.Context, h *models.House, facilityIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateHouse"); err != nil {
		return err
	}
	h.ID = s.data.next("houses")
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.tick()
	}
	h.UpdatedAt = h.CreatedAt
	var kept []uint
	h.Facilities = nil
	for _, fid := range facilityIDs {
		if f, ok := s.data.facilities[fid]; ok {
			kept = append(kept, fid)
			h.Facilities = append(h.Facilities, f)
		}
	}
	stored := *h
	stored.Area, stored.User, stored.Facilities, stored.Images = models.Area{}, models.User{}, nil, nil
	s.data.houses[h.ID] = stored
	s.data.houseFacilities[h.ID] = kept
	return nil
}

func (s *MemoryStore) addHouseImage(ctx context.Context, houseID uint, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("AddHouseImage"); err != nil {
		return err
	}
	h, ok := s.data.houses[houseID]
	if !ok {
		return ErrNotFound
	}
	img := models.HouseImage{ID: s.data.next("house_images"), HouseID: houseID, URL: url, CreatedAt: s.tick()}
	s.data.images[houseID] = append(s.data.images[houseID], img)
	if h.IndexImageURL == "" {
		h.IndexImageURL = url
		h.UpdatedAt = img.CreatedAt
		s.data.houses[houseID] = h
	}
	return nil
}

func (s *MemoryStore) incrementOrderCount(ctx context.Context, houseID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("IncrementOrderCount"); err != nil {
		return err
	}
	h, ok := s.data.houses[houseID]
	if !ok {
		return ErrNotFound
	}
	h.OrderCount++
	s.data.houses[houseID] = h
	return nil
}

func (s *MemoryStore) ConflictingHouseIDs(ctx context.Context, r models.DateRange) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ConflictingHouseIDs"); err != nil {
		return nil, err
	}
	seen := map[uint]bool{}
	ids := []uint{}
	for _, o := range s.data.orders {
		if !seen[o.HouseID] && o.Occupies(r) {
			seen[o.HouseID] = true
			ids = append(ids, o.HouseID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *MemoryStore) CountOverlappingOrders(ctx context.Context, houseID uint, r models.DateRange) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CountOverlappingOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, o := range s.data.orders {
		if o.HouseID == houseID && o.Occupies(r) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) createOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateOrder"); err != nil {
		return err
	}
	o.ID = s.data.next("orders")
	o.CreatedAt = s.tick()
	o.UpdatedAt = o.CreatedAt
	if o.Status == "" {
		o.Status = models.OrderStatusWaitAccept
	}
	stored := *o
	stored.House, stored.User = models.House{}, models.User{}
	s.data.orders[o.ID] = stored
	return nil
}

func (s *MemoryStore) OrderInStatus(ctx context.Context, orderID uint, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("OrderInStatus"); err != nil {
		return nil, err
	}
	o, ok := s.data.orders[orderID]
	if !ok || o.Status != status {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *MemoryStore) transitionOrder(ctx context.Context, orderID uint, from, to models.OrderStatus, comment string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("TransitionOrder"); err != nil {
		return false, err
	}
	o, ok := s.data.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.Comment = comment
	o.UpdatedAt = s.tick()
	s.data.orders[orderID] = o
	return true, nil
}

func (s *MemoryStore) ordersWhere(keep func(models.Order) bool) []models.Order {
	var orders []models.Order
	for _, o := range s.data.orders {
		if keep(o) {
			o.House = s.data.houses[o.HouseID]
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders
}

func (s *MemoryStore) OrdersByRenter(ctx context.Context, userID uint) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("OrdersByRenter"); err != nil {
		return nil, err
	}
	return s.ordersWhere(func(o models.Order) bool { return o.UserID == userID }), nil
}

func (s *MemoryStore) OrdersByLandlord(ctx context.Context, userID uint) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("OrdersByLandlord"); err != nil {
		return nil, err
	}
	return s.ordersWhere(func(o models.Order) bool { return s.data.houses[o.HouseID].UserID == userID }), nil
}

func (s *MemoryStore) Transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	err := s.enter("Transaction")
	snapshot := s.data.clone()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := fn(memoryTx{s}); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// memoryTx is the store handed to a transaction body; nested transactions
// join the outer one.
type memoryTx struct {
	*MemoryStore
}

func (t memoryTx) Transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx Store) error) error {
	return fn(t)
}

// Writes outside a transaction wait for any open one, so a rollback never
// restores a snapshot over them. memoryTx already holds txMu.

func (s *MemoryStore) CreateHouse(ctx context.Context, h *models.House, facilityIDs []uint) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.createHouse(ctx, h, facilityIDs)
}

func (s *MemoryStore) AddHouseImage(ctx context.Context, houseID uint, url string) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.addHouseImage(ctx, houseID, url)
}

func (s *MemoryStore) IncrementOrderCount(ctx context.Context, houseID uint) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.incrementOrderCount(ctx, houseID)
}

func (s *MemoryStore) CreateOrder(ctx context.Context, o *models.Order) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.createOrder(ctx, o)
}

func (s *MemoryStore) TransitionOrder(ctx context.Context, orderID uint, from, to models.OrderStatus, comment string) (bool, error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.transitionOrder(ctx, orderID, from, to, comment)
}

func (t memoryTx) CreateHouse(ctx context.Context, h *models.House, facilityIDs []uint) error {
	return t.MemoryStore.createHouse(ctx, h, facilityIDs)
}

func (t memoryTx) AddHouseImage(ctx context.Context, houseID uint, url string) error {
	return t.MemoryStore.addHouseImage(ctx, houseID, url)
}

func (t memoryTx) IncrementOrderCount(ctx context.Context, houseID uint) error {
	return t.MemoryStore.incrementOrderCount(ctx, houseID)
}

func (t memoryTx) CreateOrder(ctx context.Context, o *models.Order) error {
	return t.MemoryStore.createOrder(ctx, o)
}

func (t memoryTx) TransitionOrder(ctx context.Context, orderID uint, from, to models.OrderStatus, comment string) (bool, error) {
	return t.MemoryStore.transitionOrder(ctx, orderID, from, to, comment)
}
