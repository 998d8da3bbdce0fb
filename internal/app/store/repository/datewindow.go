package repository

import (
	"time"

	"storetrack/internal/app/store/entity"

	"gorm.io/gorm"
)

// Календарные окна для именованных диапазонов дат.
//
// Недели начинаются с понедельника. "Прошлая неделя" - 7 дней,
// заканчивающиеся в воскресенье перед началом текущей недели.
// Месячные диапазоны сопоставляют номер месяца и год (переход
// декабрь -> январь корректирует год), а не интервал дат.

// StartOfDay возвращает полночь даты t в ее часовом поясе
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MondayOf возвращает полночь понедельника недели, содержащей t
func MondayOf(t time.Time) time.Time {
	d := StartOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// DateRangeBounds возвращает полуинтервал [start, end) для диапазонов,
// выражаемых интервалом дат. Отсутствующая граница - nil
// (this_week не ограничен сверху). Для месячных диапазонов ok == false:
// они применяются через MonthYear.
func DateRangeBounds(name string, now time.Time) (start, end *time.Time, ok bool) {
	today := StartOfDay(now)
	switch name {
	case entity.DateRangeToday:
		e := today.AddDate(0, 0, 1)
		return &today, &e, true
	case entity.DateRangeYesterday:
		s := today.AddDate(0, 0, -1)
		return &s, &today, true
	case entity.DateRangeThisWeek:
		s := MondayOf(now)
		return &s, nil, true
	case entity.DateRangeLastWeek:
		e := MondayOf(now)
		s := e.AddDate(0, 0, -7)
		return &s, &e, true
	}
	return nil, nil, false
}

// MonthYear возвращает номер месяца и год для месячных диапазонов
func MonthYear(name string, now time.Time) (month int, year int, ok bool) {
	switch name {
	case entity.DateRangeThisMonth:
		return int(now.Month()), now.Year(), true
	case entity.DateRangeLastMonth:
		if now.Month() == time.January {
			return 12, now.Year() - 1, true
		}
		return int(now.Month()) - 1, now.Year(), true
	}
	return 0, 0, false
}

// applyDateFilter накладывает именованный диапазон и явный интервал дат
// на колонку column. Оба условия применяются вместе (сужают выборку).
// Явный интервал включает обе границы, сравнение по дате, а не по времени.
func applyDateFilter(db *gorm.DB, column string, dateRange string, startDate, endDate *time.Time, now time.Time) *gorm.DB {
	if dateRange != "" {
		if start, end, ok := DateRangeBounds(dateRange, now); ok {
			if start != nil {
				db = db.Where(column+" >= ?", *start)
			}
			if end != nil {
				db = db.Where(column+" < ?", *end)
			}
		} else if month, year, ok := MonthYear(dateRange, now); ok {
			db = db.Where("EXTRACT(MONTH FROM "+column+") = ? AND EXTRACT(YEAR FROM "+column+") = ?", month, year)
		}
	}

	if startDate != nil && endDate != nil {
		db = db.Where(column+" >= ?", StartOfDay(*startDate)).
			Where(column+" < ?", StartOfDay(*endDate).AddDate(0, 0, 1))
	}

	return db
}

// paginate прижимает номер страницы к диапазону [1, totalPages]
// и возвращает смещение для запроса
func paginate(totalItems int64, page int) (entity.Pagination, int) {
	totalPages := int((totalItems + entity.PageSize - 1) / entity.PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return entity.Pagination{
		Page:       page,
		PageSize:   entity.PageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}, (page - 1) * entity.PageSize
}
