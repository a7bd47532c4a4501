package data

import "time"

// Setting is a configuration value stored in the database.
type Setting struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:64;uniqueIndex;not null"`
	Value  string `gorm:"type:text;not null"`
	Active bool   `gorm:"not null"`
}

// GuildChannel is the delivery channel of a guild.
type GuildChannel struct {
	GuildID   string `gorm:"size:32;primaryKey"`
	ChannelID string `gorm:"size:32;not null"`
	UpdatedAt time.Time
}

// GuildPingRole is the mention policy of a guild: "0" none, "1" everyone,
// "role:<id>" a role.
type GuildPingRole struct {
	GuildID   string `gorm:"size:32;primaryKey"`
	PingRole  string `gorm:"size:64;not null"`
	UpdatedAt time.Time
}

// Question is a curated question.
type Question struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	QuestionString string `gorm:"type:text;not null"`
	InUse          bool   `gorm:"not null;index"`
}

// Poll is a curated poll.
type Poll struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	Prompt  string `gorm:"type:text;not null"`
	OptionA string `gorm:"size:255;not null"`
	OptionB string `gorm:"size:255;not null"`
	InUse   bool   `gorm:"not null;index"`
}

// CustomQuestion is a question submitted by a guild.
type CustomQuestion struct {
	QuestionID     int64  `gorm:"column:question_id;primaryKey;autoIncrement"`
	GuildID        string `gorm:"size:32;not null;index"`
	QuestionString string `gorm:"type:text;not null"`
	CreatedAt      time.Time
}

// CustomPoll is a poll submitted by a guild.
type CustomPoll struct {
	PollID    int64  `gorm:"column:poll_id;primaryKey;autoIncrement"`
	GuildID   string `gorm:"size:32;not null;index"`
	Prompt    string `gorm:"type:text;not null"`
	OptionA   string `gorm:"size:255;not null"`
	OptionB   string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

var allModels = []interface{}{
	&Setting{},
	&GuildChannel{}, &GuildPingRole{},
	&Question{}, &Poll{},
	&CustomQuestion{}, &CustomPoll{},
}
