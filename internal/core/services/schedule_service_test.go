package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/habeshapay/telebirr_verify_bot/internal/apperrors"
	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
	portssvc "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/services"
	"github.com/habeshapay/telebirr_verify_bot/internal/core/services"
	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.ScheduleSvcFacade
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewScheduleService(suite.mockRepo)
}

func (suite *ScheduleServiceTestSuite) TestSetLink() {
	ctx := context.Background()
	suite.mockRepo.On("SetLink", ctx, "link1", "t.me/achannelname").Return(nil).Once()

	err := suite.service.SetLink(ctx, "link1", "t.me/achannelname")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestSetLink_EmptyValueRejected() {
	err := suite.service.SetLink(context.Background(), "link1", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestAddEntry_Success() {
	ctx := context.Background()
	ledger := domain.NewLedger()
	ledger.SetLink("link1", "t.me/achannelname")
	ledger.SetLink("link2", "t.me/somelink")

	suite.mockRepo.On("Open", ctx).Return(ledger, nil).Once()
	suite.mockRepo.On("UpsertScheduleEntry", ctx, mock.MatchedBy(func(e domain.ScheduleEntry) bool {
		return e.Details == "Dr.Kiros Friday 1530" &&
			e.Links["link1"] == "t.me/achannelname" &&
			e.Links["link2"] == "t.me/somelink"
	})).Return(true, nil).Once()

	err := suite.service.AddEntry(ctx, dto.ScheduleEntryRequest{
		Event: "Dr.Kiros", Day: "Friday", TimeOfDay: "1530",
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestAddEntry_MissingFields() {
	err := suite.service.AddEntry(context.Background(), dto.ScheduleEntryRequest{Event: "Dr.Kiros"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertScheduleEntry", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestAddEntry_InvalidTime() {
	for _, timeOfDay := range []string{"2460", "9999", "153", "15300", "3:30"} {
		err := suite.service.AddEntry(context.Background(), dto.ScheduleEntryRequest{
			Event: "Dr.Kiros", Day: "Friday", TimeOfDay: timeOfDay,
		})
		suite.Require().Error(err, "time %q should be rejected", timeOfDay)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertScheduleEntry", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestAddEntry_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("Open", ctx).Return(domain.NewLedger(), nil).Once()
	suite.mockRepo.On("UpsertScheduleEntry", ctx, mock.AnythingOfType("domain.ScheduleEntry")).Return(false, nil).Once()

	err := suite.service.AddEntry(ctx, dto.ScheduleEntryRequest{
		Event: "Dr.Kiros", Day: "Friday", TimeOfDay: "1530",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestRemoveEntries() {
	ctx := context.Background()
	suite.mockRepo.On("RemoveScheduleEntries", ctx, "friday").Return(2, nil).Once()

	removed, err := suite.service.RemoveEntries(ctx, "friday")

	suite.Require().NoError(err)
	suite.Equal(2, removed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestRemoveEntries_EmptyTerm() {
	_, err := suite.service.RemoveEntries(context.Background(), "   ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "RemoveScheduleEntries", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestListEntries_FormatsTime() {
	ctx := context.Background()
	ledger := domain.NewLedger()
	ledger.UpsertScheduleEntry(domain.ScheduleEntry{Details: "Dr.Kiros Friday 1530"})
	ledger.UpsertScheduleEntry(domain.ScheduleEntry{Details: "Dr.Hana Sunday 0900"})
	ledger.UpsertScheduleEntry(domain.ScheduleEntry{Details: "malformed"})

	suite.mockRepo.On("Open", ctx).Return(ledger, nil).Once()

	entries, err := suite.service.ListEntries(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2, "malformed details strings are skipped")
	suite.Equal("Dr.Kiros", entries[0].Event)
	suite.Equal("Friday", entries[0].Day)
	suite.Equal("3:30 PM", entries[0].TimeDisplay)
	suite.Equal("9:00 AM", entries[1].TimeDisplay)
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
