package dummydb

import (
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type memberRepository struct {
	db *memberTable
}

var _ user.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *DB) user.Repository {
	return &memberRepository{db: db.member}
}

func (repo *memberRepository) query() []user.Member {
	members := make([]user.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Account().ID < members[j].Account().ID })
	return members
}

func (repo *memberRepository) CheckUniqueness(id int, email string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if _, ok := repo.db.table[id]; ok {
		return user.ErrIDExists
	}
	for _, m := range repo.db.table {
		if m.Account().Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *memberRepository) CreateMember(m user.Member) (user.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	id := m.Account().ID
	if _, ok := repo.db.table[id]; ok {
		return nil, user.ErrIDExists
	}
	repo.db.table[id] = m
	return m, nil
}

func (repo *memberRepository) QueryAllMembers(ordering ...core.DBOrdering) ([]user.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := repo.query()
	if err := orderMembers(members, ordering); err != nil {
		return nil, err
	}
	return members, nil
}

func (repo *memberRepository) GetMemberByID(id int) (user.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return m, nil
	}
	return nil, user.ErrNotFound
}

func (repo *memberRepository) GetMemberByEmail(email string) (user.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, m := range repo.db.table {
		if m.Account().Email == email {
			return m, nil
		}
	}
	return nil, user.ErrNotFound
}

func (repo *memberRepository) FilterMembers(filter user.QueryFilter) ([]user.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := repo.query()

	// members with search keyword matching any Name or Email ?
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		var filtered []user.Member
		for _, m := range members {
			usr := m.Account()
			if strings.Contains(strings.ToLower(usr.Email), search) ||
				strings.Contains(strings.ToLower(usr.Name), search) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	// members with any of the specified roles
	if members != nil && len(filter.Roles) > 0 {
		var filtered []user.Member
		for _, m := range members {
			for _, r := range filter.Roles {
				if m.Account().RoleStartsWith(r) {
					filtered = append(filtered, m)
					break
				}
			}
		}
		members = filtered
	}
	if members != nil && !filter.CreatedFrom.IsZero() {
		var filtered []user.Member
		timeUTC := filter.CreatedFrom.UTC()
		for _, m := range members {
			if createdAt := m.Account().CreatedAt; createdAt.Equal(timeUTC) || createdAt.After(timeUTC) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if members != nil && !filter.CreatedTo.IsZero() {
		var filtered []user.Member
		timeUTC := filter.CreatedTo.UTC()
		for _, m := range members {
			if createdAt := m.Account().CreatedAt; createdAt.Before(timeUTC) || createdAt.Equal(timeUTC) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	return members, nil
}

// UpdateMember replaces the stored member having the same ID as m.
func (repo *memberRepository) UpdateMember(m user.Member) (user.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	id := m.Account().ID
	if _, ok := repo.db.table[id]; !ok {
		return nil, user.ErrNotFound
	}
	repo.db.table[id] = m
	return m, nil
}

func (repo *memberRepository) DeleteMembersByID(ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

var memberFields = map[string]func(a, b *user.User) int{
	"id":         func(a, b *user.User) int { return a.ID - b.ID },
	"name":       func(a, b *user.User) int { return strings.Compare(a.Name, b.Name) },
	"email":      func(a, b *user.User) int { return strings.Compare(a.Email, b.Email) },
	"created_at": func(a, b *user.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// orderMembers sorts members in place. Members are expected to be ordered by ID already.
func orderMembers(members []user.Member, ordering []core.DBOrdering) error {
	if len(ordering) == 0 {
		return nil
	}
	cmps := make([]func(a, b *user.User) int, len(ordering))
	for i, ord := range ordering {
		cmp, ok := memberFields[ord.Field]
		if !ok {
			return core.NewArgumentError("invalid ordering field: " + ord.Field)
		}
		if !ord.Ascending {
			asc := cmp
			cmp = func(a, b *user.User) int { return asc(b, a) }
		}
		cmps[i] = cmp
	}

	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i].Account(), members[j].Account()
		for _, cmp := range cmps {
			if c := cmp(a, b); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}
