package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gamehub-app/gamehub/internal/model"
	"github.com/gamehub-app/gamehub/internal/storage/memory"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	controller *Controller
	ctx        context.Context
	alice      model.UserID
	bob        model.UserID
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.controller = NewController(s.storage)
	s.ctx = context.Background()

	alice := &model.User{Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))
	s.alice = alice.ID

	bob := &model.User{Username: "bob", PasswordHash: "hash"}
	s.Require().NoError(s.storage.CreateUser(s.ctx, bob))
	s.bob = bob.ID
}

// Create tests

func (s *ControllerSuite) TestCreateSucceeds() {
	game, err := s.controller.Create(s.ctx, s.alice, "Friday Night Chess")
	s.Require().NoError(err)

	s.NotZero(game.ID)
	s.Equal("Friday Night Chess", game.Name)
}

func (s *ControllerSuite) TestCreateTrimsName() {
	game, err := s.controller.Create(s.ctx, s.alice, "  Chess  ")
	s.Require().NoError(err)
	s.Equal("Chess", game.Name)
}

func (s *ControllerSuite) TestCreateRejectsEmptyName() {
	_, err := s.controller.Create(s.ctx, s.alice, "   ")
	s.ErrorIs(err, ErrNameRequired)
}

func (s *ControllerSuite) TestCreateRejectsDuplicateName() {
	_, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)

	_, err = s.controller.Create(s.ctx, s.bob, "Chess")
	s.ErrorIs(err, model.ErrGameNameTaken)
}

func (s *ControllerSuite) TestCreateMakesCreatorAMember() {
	game, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)

	members, err := s.controller.Members(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(s.alice, members[0].UserID)
	s.Equal(game.ID, members[0].GameID)
}

func (s *ControllerSuite) TestCreatorCannotJoinOwnGameAgain() {
	game, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, s.alice, game.ID)
	s.ErrorIs(err, model.ErrAlreadyJoined)
}

// Join tests

func (s *ControllerSuite) TestJoinSucceeds() {
	game, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)

	membership, err := s.controller.Join(s.ctx, s.bob, game.ID)
	s.Require().NoError(err)
	s.Equal(s.bob, membership.UserID)
	s.Equal(game.ID, membership.GameID)

	members, err := s.controller.Members(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Len(members, 2)
}

func (s *ControllerSuite) TestJoinTwiceFails() {
	game, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, s.bob, game.ID)
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, s.bob, game.ID)
	s.ErrorIs(err, model.ErrAlreadyJoined)
}

func (s *ControllerSuite) TestJoinMissingGameFails() {
	_, err := s.controller.Join(s.ctx, s.bob, 999)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// List tests

func (s *ControllerSuite) TestListReturnsGamesOrderedByName() {
	_, err := s.controller.Create(s.ctx, s.alice, "Zebra Hunt")
	s.Require().NoError(err)
	_, err = s.controller.Create(s.ctx, s.alice, "Apple Race")
	s.Require().NoError(err)

	games, err := s.controller.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("Apple Race", games[0].Name)
	s.Equal("Zebra Hunt", games[1].Name)
}

func (s *ControllerSuite) TestMemberGameIDs() {
	chess, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)
	poker, err := s.controller.Create(s.ctx, s.bob, "Poker")
	s.Require().NoError(err)

	ids, err := s.controller.MemberGameIDs(s.ctx, s.alice)
	s.Require().NoError(err)
	s.True(ids[chess.ID])
	s.False(ids[poker.ID])
}

// Delete tests

func (s *ControllerSuite) TestDeleteRemovesGameAndMemberships() {
	game, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)
	_, err = s.controller.Join(s.ctx, s.bob, game.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Delete(s.ctx, game.ID))

	_, err = s.controller.Get(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	ids, err := s.controller.MemberGameIDs(s.ctx, s.bob)
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *ControllerSuite) TestDeleteLeavesOtherGamesAlone() {
	chess, err := s.controller.Create(s.ctx, s.alice, "Chess")
	s.Require().NoError(err)
	poker, err := s.controller.Create(s.ctx, s.alice, "Poker")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Delete(s.ctx, chess.ID))

	ids, err := s.controller.MemberGameIDs(s.ctx, s.alice)
	s.Require().NoError(err)
	s.True(ids[poker.ID])
	s.False(ids[chess.ID])
}
