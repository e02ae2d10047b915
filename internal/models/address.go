package models

import "time"

// Address is a saved shipping/billing address, scoped to its owner.
type Address struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"-"`
	Label             string    `db:"label" json:"label"`
	First             string    `db:"first_name" json:"first"`
	Last              string    `db:"last_name" json:"last"`
	Addr              string    `db:"addr" json:"addr"`
	City              string    `db:"city" json:"city"`
	Postal            string    `db:"postal" json:"postal"`
	Country           string    `db:"country" json:"country"`
	IsDefaultShipping bool      `db:"is_default_shipping" json:"isDefaultShipping"`
	IsDefaultBilling  bool      `db:"is_default_billing" json:"isDefaultBilling"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// NewsletterSubscription records a footer newsletter opt-in.
type NewsletterSubscription struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
