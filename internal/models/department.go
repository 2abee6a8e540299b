package models

import "time"

// Department carries a denormalized member counter; it is only ever
// mutated with $inc inside the same flow that changes membership.
type Department struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Manager     string    `bson:"manager" json:"manager"`
	Location    string    `bson:"location" json:"location"`
	MemberCount int       `bson:"member_count" json:"member_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
