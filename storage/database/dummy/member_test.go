package dummydb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

func newRepo(t *testing.T) user.Repository {
	db, err := Open()
	require.NoError(t, err)
	return NewMemberRepository(db)
}

func newMember(t *testing.T, id int, name, role string, createdAt time.Time) user.Member {
	m, err := user.NewMember{ID: id, Name: name, Email: name + "@uni.edu", Role: role, Password: "x"}.Build()
	require.NoError(t, err)
	m.Account().CreatedAt = createdAt
	return m
}

func ids(members []user.Member) []int {
	res := make([]int, 0, len(members))
	for _, m := range members {
		res = append(res, m.Account().ID)
	}
	return res
}

func seed(t *testing.T, repo user.Repository) time.Time {
	now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	for _, m := range []user.Member{
		newMember(t, 3, "carol", user.RoleStudent, now),
		newMember(t, 1, "alice", user.RoleAdminOwner, now.Add(-2*time.Hour)),
		newMember(t, 2, "bob", user.RoleTeacher, now.Add(-time.Hour)),
		newMember(t, 4, "dave", user.RoleStudent, now.Add(time.Hour)),
	} {
		_, err := repo.CreateMember(m)
		require.NoError(t, err)
	}
	return now
}

func TestMemberRepository_CreateAndGet(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	_, err := repo.CreateMember(newMember(t, 3, "eve", user.RoleStudent, time.Now()))
	assert.Equal(t, user.ErrIDExists, err)

	m, err := repo.GetMemberByID(2)
	require.NoError(t, err)
	assert.IsType(t, &user.Teacher{}, m)

	m, err = repo.GetMemberByEmail("carol@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, 3, m.Account().ID)

	_, err = repo.GetMemberByID(42)
	assert.Equal(t, user.ErrNotFound, err)
	_, err = repo.GetMemberByEmail("lol@uni.edu")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestMemberRepository_CheckUniqueness(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	assert.Equal(t, user.ErrIDExists, repo.CheckUniqueness(1, "new@uni.edu"))
	assert.Equal(t, user.ErrEmailExists, repo.CheckUniqueness(42, "bob@uni.edu"))
	assert.NoError(t, repo.CheckUniqueness(42, "new@uni.edu"))
}

func TestMemberRepository_QueryAllMembers(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	tests := []struct {
		ordering string
		want     []int
		wantErr  bool
	}{
		{ordering: "", want: []int{1, 2, 3, 4}},
		{ordering: "-id", want: []int{4, 3, 2, 1}},
		{ordering: "name", want: []int{1, 2, 3, 4}},
		{ordering: "-created_at", want: []int{4, 3, 2, 1}},
		{ordering: "email,-id", want: []int{1, 2, 3, 4}},
		{ordering: "lol", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ordering, func(t *testing.T) {
			members, err := repo.QueryAllMembers(core.ParseOrdering(tt.ordering)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(members))
		})
	}
}

func TestMemberRepository_FilterMembers(t *testing.T) {
	repo := newRepo(t)
	now := seed(t, repo)

	tests := []struct {
		name   string
		filter user.QueryFilter
		want   []int
	}{
		{name: "empty", filter: user.QueryFilter{}, want: []int{1, 2, 3, 4}},
		{name: "search name", filter: user.QueryFilter{Search: "CAR"}, want: []int{3}},
		{name: "search email", filter: user.QueryFilter{Search: "@uni"}, want: []int{1, 2, 3, 4}},
		{name: "roles", filter: user.QueryFilter{Roles: []string{user.RoleStudent}}, want: []int{3, 4}},
		{name: "admin prefix", filter: user.QueryFilter{Roles: []string{user.RoleAdmin}}, want: []int{1}},
		{name: "created from", filter: user.QueryFilter{CreatedFrom: now}, want: []int{3, 4}},
		{name: "created to", filter: user.QueryFilter{CreatedTo: now.Add(-time.Hour)}, want: []int{1, 2}},
		{name: "combined", filter: user.QueryFilter{Search: "a", Roles: []string{user.RoleStudent}, CreatedFrom: now}, want: []int{3, 4}},
		{name: "no match", filter: user.QueryFilter{Search: "zzz"}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members, err := repo.FilterMembers(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(members))
		})
	}
}

func TestMemberRepository_UpdateAndDelete(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	_, err := repo.UpdateMember(newMember(t, 42, "eve", user.RoleStudent, time.Now()))
	assert.Equal(t, user.ErrNotFound, err)

	updated := newMember(t, 2, "robert", user.RoleTeacher, time.Now())
	_, err = repo.UpdateMember(updated)
	require.NoError(t, err)
	m, err := repo.GetMemberByID(2)
	require.NoError(t, err)
	assert.Equal(t, "robert", m.Account().Name)

	require.NoError(t, repo.DeleteMembersByID(1, 3, 42))
	members, err := repo.QueryAllMembers()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, ids(members))
}
