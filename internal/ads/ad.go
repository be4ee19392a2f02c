// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

/*
Package ads manages advertisement placements on the Inkfold site.

An advertiser applies with a creative and a target link; an admin approves
or rejects the application, activates it for a paid period, and may renew
it. Ads are identified by a short six-character code used directly in
click-tracking URLs.
*/
package ads

import "time"

// # Status Machine

// Status tracks an advertisement through its lifecycle.
type Status string

const (
	// StatusPending is a freshly submitted application awaiting review.
	StatusPending Status = "pending"

	// StatusApproved has passed review but is not yet running.
	StatusApproved Status = "approved"

	// StatusRejected was declined in review. Terminal.
	StatusRejected Status = "rejected"

	// StatusActive is currently being served.
	StatusActive Status = "active"

	// StatusExpired finished its paid period. Renewal reactivates it.
	StatusExpired Status = "expired"
)

// # Core Entity

// Ad is one advertisement placement. ID is a six-character alphanumeric
// code generated at application time and never reused.
type Ad struct {
	ID               string     `json:"id"`
	AdType           string     `json:"ad_type"`
	Link             string     `json:"link"`
	MainText         string     `json:"main_text"`
	SecondaryText    string     `json:"secondary_text"`
	FileExt          string     `json:"file_ext"`
	OwnerID          string     `json:"owner_id"`
	Price            int        `json:"price"`
	Status           Status     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
	Clicks           int64      `json:"clicks"`
	ApplicationDate  time.Time  `json:"application_date"`
	ApprovedDate     *time.Time `json:"approved_date,omitempty"`
	ActivationDate   *time.Time `json:"activation_date,omitempty"`
	DeactivationDate *time.Time `json:"deactivation_date,omitempty"`
}

// Placement slots an ad can be bought for.
const (
	AdTypeBanner  = "banner"
	AdTypeSidebar = "sidebar"
	AdTypeFooter  = "footer"
)

// ValidAdType reports whether t names a known placement slot.
func ValidAdType(t string) bool {
	return t == AdTypeBanner || t == AdTypeSidebar || t == AdTypeFooter
}

// Application is the validated input for a new ad.
type Application struct {
	AdType        string `json:"ad_type"`
	Link          string `json:"link"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}
