package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roomrent/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// overlapping restricts an orders query to rows colliding with r.
func overlapping(r models.DateRange) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if r.Start != nil && r.End != nil {
			return db.Where("begin_date <= ? AND end_date >= ?", *r.End, *r.Start)
		}
		if r.Start != nil {
			return db.Where("end_date >= ?", *r.Start)
		}
		if r.End != nil {
			return db.Where("begin_date <= ?", *r.End)
		}
		return db.Where("1 = 0")
	}
}

func (s *GormStore) Areas(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	err := s.conn(ctx).Order("id ASC").Find(&areas).Error
	return areas, err
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormStore) HouseByID(ctx context.Context, id uint) (*models.House, error) {
	var house models.House
	if err := s.conn(ctx).First(&house, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &house, nil
}

func (s *GormStore) HouseDetail(ctx context.Context, id uint) (*models.House, error) {
	var house models.House
	err := s.conn(ctx).
		Preload("User").
		Preload("Area").
		Preload("Facilities", func(db *gorm.DB) *gorm.DB { return db.Order("facilities.id ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("house_images.id ASC") }).
		First(&house, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &house, nil
}

func (s *GormStore) HouseReviews(ctx context.Context, houseID uint, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := s.conn(ctx).
		Preload("User").
		Where("house_id = ? AND status = ? AND comment <> ''", houseID, models.OrderStatusComplete).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *GormStore) TopHouses(ctx context.Context, limit int) ([]models.House, error) {
	var houses []models.House
	err := s.conn(ctx).
		Preload("Area").
		Preload("User").
		Order("order_count DESC, id DESC").
		Limit(limit).
		Find(&houses).Error
	return houses, err
}

func (s *GormStore) SearchHouses(ctx context.Context, q HouseQuery) ([]models.House, int64, error) {
	filtered := func() *gorm.DB {
		tx := s.conn(ctx).Model(&models.House{})
		if q.AreaID != 0 {
			tx = tx.Where("houses.area_id = ?", q.AreaID)
		}
		if len(q.ExcludeIDs) > 0 {
			ids := make(pq.Int64Array, len(q.ExcludeIDs))
			for i, id := range q.ExcludeIDs {
				ids[i] = int64(id)
			}
			tx = tx.Where("NOT (houses.id = ANY(?))", ids)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var houses []models.House
	err := filtered().
		Preload("Area").
		Preload("User").
		Order(orderClause(q.Sort)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&houses).Error
	return houses, total, err
}

func (s *GormStore) HousesByOwner(ctx context.Context, ownerID uint) ([]models.House, error) {
	var houses []models.House
	err := s.conn(ctx).
		Preload("Area").
		Preload("User").
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&houses).Error
	return houses, err
}

func (s *GormStore) CreateHouse(ctx context.Context, h *models.House, facilityIDs []uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if len(facilityIDs) > 0 {
			var facilities []models.Facility
			if err := tx.Where("id IN ?", facilityIDs).Find(&facilities).Error; err != nil {
				return err
			}
			h.Facilities = facilities
		}
		return tx.Omit("Area", "User", "Images").Create(h).Error
	})
}

func (s *GormStore) AddHouseImage(ctx context.Context, houseID uint, url string) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var house models.House
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&house, houseID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Create(&models.HouseImage{HouseID: houseID, URL: url}).Error; err != nil {
			return err
		}
		if house.IndexImageURL != "" {
			return nil
		}
		return tx.Model(&house).Update("index_image_url", url).Error
	})
}

func (s *GormStore) IncrementOrderCount(ctx context.Context, houseID uint) error {
	res := s.conn(ctx).Model(&models.House{}).
		Where("id = ?", houseID).
		UpdateColumn("order_count", gorm.Expr("order_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ConflictingHouseIDs(ctx context.Context, r models.DateRange) ([]uint, error) {
	var ids []uint
	if r.IsZero() {
		return ids, nil
	}
	err := s.conn(ctx).Model(&models.Order{}).
		Scopes(overlapping(r)).
		Distinct().
		Pluck("house_id", &ids).Error
	return ids, err
}

func (s *GormStore) CountOverlappingOrders(ctx context.Context, houseID uint, r models.DateRange) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Order{}).
		Where("house_id = ?", houseID).
		Scopes(overlapping(r)).
		Count(&n).Error
	return n, err
}

func (s *GormStore) CreateOrder(ctx context.Context, o *models.Order) error {
	return s.conn(ctx).Omit("House", "User").Create(o).Error
}

func (s *GormStore) OrderInStatus(ctx context.Context, orderID uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := s.conn(ctx).Where("id = ? AND status = ?", orderID, status).First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (s *GormStore) TransitionOrder(ctx context.Context, orderID uint, from, to models.OrderStatus, comment string) (bool, error) {
	res := s.conn(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{"status": to, "comment": comment})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) OrdersByRenter(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.conn(ctx).
		Preload("House").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (s *GormStore) OrdersByLandlord(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	owned := s.conn(ctx).Model(&models.House{}).Select("id").Where("user_id = ?", userID)
	err := s.conn(ctx).
		Preload("House").
		Where("house_id IN (?)", owned).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (s *GormStore) Transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx Store) error) error {
	var txOpts []*sql.TxOptions
	if opts != nil {
		txOpts = append(txOpts, opts)
	}
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	}, txOpts...)
}
