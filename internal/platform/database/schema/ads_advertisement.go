package schema

// AdsAdvertisementTable represents the 'ads.advertisement' table
type AdsAdvertisementTable struct {
	Table            string
	ID               string
	AdType           string
	Link             string
	MainText         string
	SecondaryText    string
	FileExt          string
	OwnerID          string
	Price            string
	Status           string
	Notes            string
	Clicks           string
	ApplicationDate  string
	ApprovedDate     string
	ActivationDate   string
	DeactivationDate string
}

// AdsAdvertisement is the schema definition for ads.advertisement
var AdsAdvertisement = AdsAdvertisementTable{
	Table:            "ads.advertisement",
	ID:               "id",
	AdType:           "ad_type",
	Link:             "link",
	MainText:         "main_text",
	SecondaryText:    "secondary_text",
	FileExt:          "file_ext",
	OwnerID:          "owner_id",
	Price:            "price",
	Status:           "status",
	Notes:            "notes",
	Clicks:           "clicks",
	ApplicationDate:  "application_date",
	ApprovedDate:     "approved_date",
	ActivationDate:   "activation_date",
	DeactivationDate: "deactivation_date",
}

func (t AdsAdvertisementTable) Columns() []string {
	return []string{
		t.ID, t.AdType, t.Link, t.MainText, t.SecondaryText, t.FileExt,
		t.OwnerID, t.Price, t.Status, t.Notes, t.Clicks,
		t.ApplicationDate, t.ApprovedDate, t.ActivationDate, t.DeactivationDate,
	}
}
