/*
 * MailCrawl - Copyright (C) 2022 Zane van Iperen.
 *    Contact: zane@zanevaniperen.com
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 2, and only
 * version 2 as published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 59 Temple Place, Suite 330, Boston, MA  02111-1307  USA
 */

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vs49688/mailcrawl/store"
	"github.com/vs49688/mailcrawl/store/mock_store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testConfig() *store.Config {
	return &store.Config{
		Host:     "mail.example.com",
		Protocol: store.ProtocolIMAPS,
		Username: "user",
		Password: "pass",
	}
}

func newTestManager(t *testing.T) (*Manager, *mock_store.MockFactory, *fakeClock, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	factory := mock_store.NewMockFactory(ctrl)
	clock := &fakeClock{t: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}

	m := NewManager(testConfig(), factory, WithClock(clock.now))
	return m, factory, clock, ctrl
}

func TestEnsureReuses(t *testing.T) {
	m, factory, clock, ctrl := newTestManager(t)
	defer ctrl.Finish()

	s := mock_store.NewMockStore(ctrl)
	s.EXPECT().LoggedOut().Return(nil).AnyTimes()
	factory.EXPECT().NewStore(gomock.Any()).Return(s, nil).Times(1)

	got, err := m.Ensure()
	require.NoError(t, err)
	assert.Equal(t, s, got)

	// Each use extends the expiry, so this never times out.
	for i := 0; i < 10; i++ {
		clock.advance(4 * time.Minute)
		got, err = m.Ensure()
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	assert.True(t, m.Live())
}

func TestEnsureExpired(t *testing.T) {
	m, factory, clock, ctrl := newTestManager(t)
	defer ctrl.Finish()

	first := mock_store.NewMockStore(ctrl)
	second := mock_store.NewMockStore(ctrl)

	gomock.InOrder(
		factory.EXPECT().NewStore(gomock.Any()).Return(first, nil),
		first.EXPECT().Close().Return(nil),
		factory.EXPECT().NewStore(gomock.Any()).Return(second, nil),
	)

	_, err := m.Ensure()
	require.NoError(t, err)

	clock.advance(DefaultTTL)

	got, err := m.Ensure()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestEnsureLoggedOut(t *testing.T) {
	m, factory, _, ctrl := newTestManager(t)
	defer ctrl.Finish()

	gone := make(chan struct{})
	first := mock_store.NewMockStore(ctrl)
	first.EXPECT().LoggedOut().Return((<-chan struct{})(gone)).AnyTimes()
	second := mock_store.NewMockStore(ctrl)

	gomock.InOrder(
		factory.EXPECT().NewStore(gomock.Any()).Return(first, nil),
		first.EXPECT().Close().Return(errors.New("already closed")),
		factory.EXPECT().NewStore(gomock.Any()).Return(second, nil),
	)

	_, err := m.Ensure()
	require.NoError(t, err)

	close(gone)

	got, err := m.Ensure()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestEnsureOpenFailure(t *testing.T) {
	m, factory, _, ctrl := newTestManager(t)
	defer ctrl.Finish()

	cause := errors.New("connection refused")
	factory.EXPECT().NewStore(gomock.Any()).Return(nil, cause)

	_, err := m.Ensure()

	var ce *store.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, cause)
	assert.True(t, store.IsTemporary(err))
	assert.False(t, m.Live())
}

func TestTeardownIdempotent(t *testing.T) {
	m, factory, _, ctrl := newTestManager(t)
	defer ctrl.Finish()

	s := mock_store.NewMockStore(ctrl)
	factory.EXPECT().NewStore(gomock.Any()).Return(s, nil)
	s.EXPECT().Close().Return(nil).Times(1)

	m.Teardown()

	_, err := m.Ensure()
	require.NoError(t, err)

	m.Teardown()
	m.Teardown()
	assert.False(t, m.Live())
}

func TestPoll(t *testing.T) {
	m, factory, clock, ctrl := newTestManager(t)
	defer ctrl.Finish()

	s := mock_store.NewMockStore(ctrl)
	factory.EXPECT().NewStore(gomock.Any()).Return(s, nil)

	m.Poll()

	_, err := m.Ensure()
	require.NoError(t, err)

	clock.advance(DefaultTTL - time.Second)
	m.Poll()
	assert.True(t, m.Live())

	s.EXPECT().Close().Return(nil)
	clock.advance(time.Second)
	m.Poll()
	assert.False(t, m.Live())
}

func TestWithTTL(t *testing.T) {
	m, factory, clock, ctrl := newTestManager(t)
	defer ctrl.Finish()
	WithTTL(time.Second)(m)

	s := mock_store.NewMockStore(ctrl)
	factory.EXPECT().NewStore(gomock.Any()).Return(s, nil)

	_, err := m.Ensure()
	require.NoError(t, err)

	s.EXPECT().Close().Return(nil)
	clock.advance(time.Second)
	m.Poll()
	assert.False(t, m.Live())
}

func TestCheck(t *testing.T) {
	t.Run("working", func(t *testing.T) {
		m, factory, _, ctrl := newTestManager(t)
		defer ctrl.Finish()

		s := mock_store.NewMockStore(ctrl)
		factory.EXPECT().NewStore(gomock.Any()).Return(s, nil)
		s.EXPECT().DefaultFolder().Return(mock_store.NewMockFolder(ctrl), nil)

		assert.NoError(t, m.Check())
		assert.True(t, m.Live())
	})

	t.Run("reopens", func(t *testing.T) {
		m, factory, _, ctrl := newTestManager(t)
		defer ctrl.Finish()

		first := mock_store.NewMockStore(ctrl)
		first.EXPECT().LoggedOut().Return(nil).AnyTimes()
		second := mock_store.NewMockStore(ctrl)

		gomock.InOrder(
			factory.EXPECT().NewStore(gomock.Any()).Return(first, nil),
			first.EXPECT().Close().Return(nil),
			factory.EXPECT().NewStore(gomock.Any()).Return(second, nil),
			second.EXPECT().DefaultFolder().Return(mock_store.NewMockFolder(ctrl), nil),
		)

		_, err := m.Ensure()
		require.NoError(t, err)
		assert.NoError(t, m.Check())
	})

	t.Run("connection", func(t *testing.T) {
		m, factory, _, ctrl := newTestManager(t)
		defer ctrl.Finish()

		factory.EXPECT().NewStore(gomock.Any()).Return(nil, errors.New("timeout"))

		err := m.Check()
		assert.True(t, store.IsTemporary(err))
	})

	t.Run("repository", func(t *testing.T) {
		m, factory, _, ctrl := newTestManager(t)
		defer ctrl.Finish()

		s := mock_store.NewMockStore(ctrl)
		factory.EXPECT().NewStore(gomock.Any()).Return(s, nil)
		s.EXPECT().DefaultFolder().Return(nil, errors.New("no root"))

		err := m.Check()

		var re *store.RepositoryError
		require.ErrorAs(t, err, &re)
		assert.False(t, store.IsTemporary(err))
	})
}

func TestLogURL(t *testing.T) {
	m := NewManager(testConfig(), nil)
	assert.Equal(t, "imaps://user@mail.example.com:993", m.logURL)
}
