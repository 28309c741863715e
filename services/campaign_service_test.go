package services

import (
	"testing"

	"celebrity-booking-system/models"

	"github.com/stretchr/testify/require"
)

func TestCreateCampaignHoldsNoFunds(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "250")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	campaign, err := svc.Campaigns.Create(user.ID, CreateCampaignInput{
		CelebrityID:  celebrity.ID,
		CampaignType: "brand_ambassador",
		Description:  "Six month sneaker campaign",
	})
	require.NoError(t, err)
	require.Equal(t, models.CampaignStatusPending, campaign.Status)
	require.False(t, campaign.CustomPriceUsd.Valid)

	// Campaigns are priced by negotiation, so a balance below the celebrity's
	// booking price is fine and nothing is debited.
	requireBalance(t, db, user.ID, "250")

	var thread models.Thread
	require.NoError(t, db.First(&thread, "key = ?", models.ThreadKey(models.ThreadTypeCampaign, campaign.ID)).Error)
	require.Equal(t, user.ID, thread.UserID)
	require.Equal(t, celebrity.ID, thread.CelebrityID)
}

func TestUpdateCampaignStatusAndPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "0")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	campaign, err := svc.Campaigns.Create(user.ID, CreateCampaignInput{
		CelebrityID:  celebrity.ID,
		CampaignType: "social_post",
	})
	require.NoError(t, err)

	status := string(models.CampaignStatusNegotiating)
	price := "1500.50"
	_, err = svc.Campaigns.Update("admin-1", campaign.ID, UpdateCampaignInput{
		Status:         &status,
		CustomPriceUsd: &price,
	})
	require.NoError(t, err)

	var stored models.Campaign
	require.NoError(t, db.First(&stored, "id = ?", campaign.ID).Error)
	require.Equal(t, models.CampaignStatusNegotiating, stored.Status)
	require.True(t, stored.CustomPriceUsd.Valid)
	require.True(t, stored.CustomPriceUsd.Decimal.Equal(mustDecimal(t, "1500.50")))

	// The negotiated price is informational; the wallet never moves.
	requireBalance(t, db, user.ID, "0")
}

func TestUpdateCampaignTransitionRules(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "0")
	celebrity := seedCelebrity(t, db, "Ava Stone", "300")

	campaign, err := svc.Campaigns.Create(user.ID, CreateCampaignInput{
		CelebrityID:  celebrity.ID,
		CampaignType: "social_post",
	})
	require.NoError(t, err)

	completed := string(models.CampaignStatusCompleted)
	_, err = svc.Campaigns.Update("admin-1", campaign.ID, UpdateCampaignInput{Status: &completed})
	require.ErrorIs(t, err, ErrInvalidTransition)

	bogus := "archived"
	_, err = svc.Campaigns.Update("admin-1", campaign.ID, UpdateCampaignInput{Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidStatus)

	badPrice := "-10"
	_, err = svc.Campaigns.Update("admin-1", campaign.ID, UpdateCampaignInput{CustomPriceUsd: &badPrice})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Campaigns.Update("admin-1", "missing", UpdateCampaignInput{Status: &completed})
	require.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCreateCampaignUnknownCelebrity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	user := seedUser(t, db, "0")

	_, err := svc.Campaigns.Create(user.ID, CreateCampaignInput{
		CelebrityID:  "missing",
		CampaignType: "social_post",
	})
	require.ErrorIs(t, err, ErrCelebrityNotFound)
}
