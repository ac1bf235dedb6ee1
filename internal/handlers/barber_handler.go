package handlers

import (
	"errors"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	q := h.db.Model(&records.BarberProfile{}).
		Where("status = ?", string(models.ProfileApproved))

	if city := strings.ToLower(strings.TrimSpace(c.Query("city"))); city != "" {
		q = q.Where("LOWER(city) = ?", city)
	}
	if district := strings.ToLower(strings.TrimSpace(c.Query("district"))); district != "" {
		q = q.Where("LOWER(district) = ?", district)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		writeError(c, err)
		return
	}

	var profiles []records.BarberProfile
	if err := q.Order("id ASC").Offset(page * size).Limit(size).Find(&profiles).Error; err != nil {
		writeError(c, err)
		return
	}

	items, err := listItems(h.db, profiles)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.Page(items, total, page, size))
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	profile, ok := h.findProfile(c, id)
	if !ok {
		return
	}

	detail, err := loadDetail(h.db, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, detail)
}

func (h *BarberHandler) Services(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.findProfile(c, id); !ok {
		return
	}

	services, err := activeServices(h.db, id)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]models.Service, 0, len(services))
	for i := range services {
		out = append(out, dto.Service(&services[i]))
	}
	httpresp.List(c, out)
}

func (h *BarberHandler) Reviews(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.findProfile(c, id); !ok {
		return
	}

	page, size := pageParams(c)
	q := h.db.Model(&records.Review{}).
		Where("barber_profile_id = ? AND is_visible = ?", id, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		writeError(c, err)
		return
	}

	var reviews []records.Review
	if err := q.Preload("Customer").
		Order("created_at DESC, id DESC").
		Offset(page * size).
		Limit(size).
		Find(&reviews).Error; err != nil {
		writeError(c, err)
		return
	}

	out := make([]models.Review, 0, len(reviews))
	for i := range reviews {
		out = append(out, dto.Review(&reviews[i]))
	}
	httpresp.OK(c, dto.Page(out, total, page, size))
}

func (h *BarberHandler) WorkingHours(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.findProfile(c, id); !ok {
		return
	}

	days, err := workingDays(h.db, id)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, workingHoursOut(days))
}

// ======================================================
// BARBER OWNED
// ======================================================

func (h *BarberHandler) MyProfile(c *gin.Context) {
	profile, ok := myProfile(c, h.db)
	if !ok {
		return
	}

	detail, err := loadDetail(h.db, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, detail)
}

func (h *BarberHandler) CreateProfile(c *gin.Context) {
	var req models.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := currentUserID(c)

	var count int64
	if err := h.db.Model(&records.BarberProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		writeError(c, err)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "Barber profile already exists")
		return
	}

	profile := records.BarberProfile{
		UserID: userID,
		Status: string(models.ProfilePending),
	}
	applyProfile(&profile, req)

	if err := h.db.Create(&profile).Error; err != nil {
		writeError(c, err)
		return
	}
	if err := h.db.Preload("User").First(&profile, profile.ID).Error; err != nil {
		writeError(c, err)
		return
	}

	detail, err := loadDetail(h.db, &profile)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, detail)
}

func (h *BarberHandler) UpdateProfile(c *gin.Context) {
	var req models.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, ok := myProfile(c, h.db)
	if !ok {
		return
	}

	applyProfile(profile, req)
	if err := h.db.Omit("User").Save(profile).Error; err != nil {
		writeError(c, err)
		return
	}

	detail, err := loadDetail(h.db, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, detail)
}

// ======================================================
// HELPERS
// ======================================================

func (h *BarberHandler) findProfile(c *gin.Context, id uint) (*records.BarberProfile, bool) {
	var profile records.BarberProfile
	if err := h.db.Preload("User").First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Barber not found")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &profile, true
}

// myProfile loads the signed-in barber's profile or writes 404.
func myProfile(c *gin.Context, db *gorm.DB) (*records.BarberProfile, bool) {
	var profile records.BarberProfile
	if err := db.Preload("User").Where("user_id = ?", currentUserID(c)).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Barber profile not found")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &profile, true
}

func applyProfile(p *records.BarberProfile, req models.ProfileRequest) {
	p.ShopName = strings.TrimSpace(req.ShopName)
	p.Description = req.Description
	p.Address = req.Address
	p.City = strings.TrimSpace(req.City)
	p.District = strings.TrimSpace(req.District)
	p.Latitude = req.Latitude
	p.Longitude = req.Longitude
	p.ProfileImage = req.ProfileImage
}

func activeServices(db *gorm.DB, profileID uint) ([]records.Service, error) {
	var services []records.Service
	err := db.Where("barber_profile_id = ? AND is_active = ?", profileID, true).
		Order("id ASC").
		Find(&services).Error
	return services, err
}

var weekdayIndex = func() map[string]int {
	m := make(map[string]int, len(models.Weekdays))
	for i, d := range models.Weekdays {
		m[d] = i
	}
	return m
}()

func workingDays(db *gorm.DB, profileID uint) ([]records.WorkingDay, error) {
	var days []records.WorkingDay
	if err := db.Where("barber_profile_id = ?", profileID).Find(&days).Error; err != nil {
		return nil, err
	}
	sort.Slice(days, func(i, j int) bool {
		return weekdayIndex[days[i].DayOfWeek] < weekdayIndex[days[j].DayOfWeek]
	})
	return days, nil
}

func workingHoursOut(days []records.WorkingDay) []models.WorkingHours {
	out := make([]models.WorkingHours, 0, len(days))
	for i := range days {
		out = append(out, dto.WorkingHours(&days[i]))
	}
	return out
}

func ratings(db *gorm.DB, profileIDs []uint) (map[uint]dto.Rating, error) {
	out := make(map[uint]dto.Rating, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		BarberProfileID uint
		Average         float64
		Count           int
	}
	if err := db.Model(&records.Review{}).
		Select("barber_profile_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("barber_profile_id IN ? AND is_visible = ?", profileIDs, true).
		Group("barber_profile_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.BarberProfileID] = dto.Rating{Average: r.Average, Count: r.Count}
	}
	return out, nil
}

func listItems(db *gorm.DB, profiles []records.BarberProfile) ([]models.BarberListItem, error) {
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	rated, err := ratings(db, ids)
	if err != nil {
		return nil, err
	}

	prices := make(map[uint]float64, len(ids))
	if len(ids) > 0 {
		var rows []struct {
			BarberProfileID uint
			MinPrice        float64
		}
		if err := db.Model(&records.Service{}).
			Select("barber_profile_id, MIN(price) AS min_price").
			Where("barber_profile_id IN ? AND is_active = ?", ids, true).
			Group("barber_profile_id").
			Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			prices[r.BarberProfileID] = r.MinPrice
		}
	}

	items := make([]models.BarberListItem, 0, len(profiles))
	for i := range profiles {
		var starting *float64
		if p, ok := prices[profiles[i].ID]; ok {
			starting = &p
		}
		items = append(items, dto.ListItem(&profiles[i], rated[profiles[i].ID], starting))
	}
	return items, nil
}

func loadDetail(db *gorm.DB, profile *records.BarberProfile) (models.BarberDetail, error) {
	services, err := activeServices(db, profile.ID)
	if err != nil {
		return models.BarberDetail{}, err
	}
	days, err := workingDays(db, profile.ID)
	if err != nil {
		return models.BarberDetail{}, err
	}
	rated, err := ratings(db, []uint{profile.ID})
	if err != nil {
		return models.BarberDetail{}, err
	}
	return dto.Detail(profile, rated[profile.ID], services, days), nil
}
