package domain

import (
	"encoding/json"
	"fmt"
)

// FlexString decodes a JSON value that may arrive as a string, a number or
// null. The raw data files are scraped and do not agree on cell types.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	return fmt.Errorf("cannot decode %q as string or number", string(data))
}

func (f FlexString) String() string { return string(f) }

// GoalEvent is a single goal scored during a match.
type GoalEvent struct {
	Minute FlexString `json:"minute"`
	Scorer string     `json:"joueur"`
	Assist string     `json:"passe_decisive"`
	Type   string     `json:"type"`
}

// CardEvent is a single booking during a match. Type is "jaune" or "rouge".
type CardEvent struct {
	Minute FlexString `json:"minute"`
	Player string     `json:"joueur"`
	Type   string     `json:"type"`
}

// Match is one tournament match record.
type Match struct {
	Number     string      `json:"match_n"`
	Date       string      `json:"date"`
	DateISO    string      `json:"date_iso"`
	Phase      string      `json:"phase"`
	Stage      string      `json:"etape"`
	Stadium    string      `json:"stade"`
	Attendance FlexString  `json:"affluence"`
	Referee    string      `json:"arbitre"`
	HomeTeam   string      `json:"equipe_domicile"`
	AwayTeam   string      `json:"equipe_exterieur"`
	Score      string      `json:"score"`
	HomeGoals  []GoalEvent `json:"buteurs_domicile"`
	AwayGoals  []GoalEvent `json:"buteurs_exterieur"`
	HomeCards  []CardEvent `json:"cartons_domicile"`
	AwayCards  []CardEvent `json:"cartons_exterieur"`
}

// Team is one qualified-team record.
type Team struct {
	Name                string     `json:"Equipe"`
	Participation       FlexString `json:"Participation"`
	FirstParticipation  string     `json:"Premiere_participation"`
	LastParticipation   string     `json:"Derniere_participation"`
	QualificationMethod string     `json:"Methode_qualification"`
	QualificationDate   string     `json:"Date_qualification"`
	BestResult          string     `json:"Meilleur_resultat"`
	PastAppearances     string     `json:"Apparitions_precedentes"`
}

// Coach is one head-coach record, joined to a team by country name.
type Coach struct {
	Country  string `json:"pays"`
	Name     string `json:"selectionneur"`
	Category string `json:"categorie"`
	Details  string `json:"details"`
}

// Player is one squad member.
type Player struct {
	Name string `json:"name"`
	Club string `json:"club"`
}

// Squad groups a team's players by position.
type Squad struct {
	Goalkeepers []Player `json:"goalkeepers"`
	Defenders   []Player `json:"defenders"`
	Midfielders []Player `json:"midfielders"`
	Forwards    []Player `json:"forwards"`
}

// SquadRecord is one squad entry, joined to a team by name.
type SquadRecord struct {
	Team  string `json:"team"`
	Squad Squad  `json:"squad"`
}

// StandingsRow is one line of a group table.
type StandingsRow struct {
	Rank         FlexString `json:"Rang"`
	Team         string     `json:"Equipe"`
	Points       FlexString `json:"Pts"`
	Played       FlexString `json:"Matchs_joues"`
	Won          FlexString `json:"Gagnes"`
	Drawn        FlexString `json:"Nuls"`
	Lost         FlexString `json:"Perdus"`
	GoalsFor     FlexString `json:"Buts_pour"`
	GoalsAgainst FlexString `json:"Buts_contre"`
	Difference   FlexString `json:"Diff"`
}

// StandingsGroup is one group's table.
type StandingsGroup struct {
	Name string         `json:"Nom_Groupe"`
	Rows []StandingsRow `json:"Classement"`
}

// Stadium is one venue record.
type Stadium struct {
	Name     string     `json:"Stade"`
	City     string     `json:"Ville"`
	Capacity FlexString `json:"Capacité"`
}

// Document is the unit of retrieval: rendered text plus metadata tags used
// for filtered lookups. Metadata always carries "type" and "source".
type Document struct {
	Content  string
	Metadata map[string]any
}

// SearchResult is a retrieved document with its similarity score.
type SearchResult struct {
	Document Document
	Score    float64
}
