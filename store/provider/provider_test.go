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

package provider

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vs49688/mailcrawl/store"
	"github.com/vs49688/mailcrawl/store/mock_store"
)

func TestDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mock_store.NewMockFactory(ctrl)
	pop3 := mock_store.NewMockFactory(ctrl)
	s := mock_store.NewMockStore(ctrl)

	f := New(WithProvider("imaps", imap), WithProvider("POP3", pop3))

	imap.EXPECT().NewStore(gomock.Any()).DoAndReturn(func(cfg *store.Config) (store.Store, error) {
		assert.Equal(t, store.ProtocolIMAPS, cfg.Protocol)
		return s, nil
	})

	got, err := f.NewStore(&store.Config{Protocol: "IMAPS"})
	require.NoError(t, err)
	assert.Equal(t, s, got)

	pop3.EXPECT().NewStore(gomock.Any()).Return(nil, errors.New("refused"))

	_, err = f.NewStore(&store.Config{Protocol: store.ProtocolPOP3})
	assert.EqualError(t, err, "refused")
}

func TestUnknownProtocol(t *testing.T) {
	_, err := New().NewStore(&store.Config{Protocol: "nntp"})
	assert.EqualError(t, err, "unsupported protocol: nntp")
}

func TestUnregistered(t *testing.T) {
	f := &Factory{providers: map[string]store.Factory{}}
	_, err := f.NewStore(&store.Config{Protocol: store.ProtocolIMAP})
	assert.EqualError(t, err, "provider imap not registered")
}
