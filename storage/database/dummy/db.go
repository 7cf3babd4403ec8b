package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/user"
)

type (
	DB struct {
		member *memberTable
	}

	memberTable struct {
		sync.RWMutex
		table map[int]user.Member
	}
)

func Open() (*DB, error) {
	db := &DB{
		member: &memberTable{table: make(map[int]user.Member)},
	}
	return db, nil
}
