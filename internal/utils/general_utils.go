package utils

import (
	"math"
	"strconv"

	"gorm.io/gorm"
)

func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if size < 1 {
			size = DefaultPageSize
		}
		offset := (page - 1) * size
		return db.Offset(offset).Limit(size)
	}
}

// ParseID returns 0 for anything that is not a positive integer.
func ParseID(value string) uint {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// keeps page*size inside an int32 offset
	MaxPage = math.MaxInt32 / MaxPageSize
)

func ParsePageAndSize(page, size string) (int, int) {
	pageInt, err := strconv.Atoi(page)
	if err != nil || pageInt < 1 {
		pageInt = 1
	}
	if pageInt > MaxPage {
		pageInt = MaxPage
	}

	sizeInt, err := strconv.Atoi(size)
	if err != nil || sizeInt < 1 {
		sizeInt = DefaultPageSize
	}
	if sizeInt > MaxPageSize {
		sizeInt = MaxPageSize
	}
	return pageInt, sizeInt
}
