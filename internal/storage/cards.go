package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dvidal/manaforge/internal/colors"
	"github.com/dvidal/manaforge/internal/storage/models"
)

// ErrNotFound is returned when a card lookup matches nothing.
var ErrNotFound = errors.New("card not found")

// ErrBadSort is returned when Filters.OrderBy is not a sortable column.
var ErrBadSort = errors.New("unsupported sort column")

// ErrBadFormat is returned when Filters.LegalFormat has no legality column.
var ErrBadFormat = errors.New("unsupported legality format")

// DefaultLimit is the result page size when Filters.Limit is zero.
const DefaultLimit = 50

// orderColumns whitelists sortable columns to keep ORDER BY out of
// user-controlled SQL.
var orderColumns = map[string]string{
	"edhrec_rank": "c.edhrec_rank",
	"cmc":         "c.cmc",
	"price_usd":   "c.price_usd",
	"name":        "c.name",
	"released_at": "c.released_at",
	"power":       "CAST(c.power AS REAL)",
}

// legalFormats whitelists the legal_* columns present in the schema.
var legalFormats = map[string]bool{
	"commander": true,
	"vintage":   true,
	"legacy":    true,
	"modern":    true,
	"pauper":    true,
}

// Filters describes an optional set of structured search constraints.
// Zero values mean "no constraint" except where noted.
type Filters struct {
	// TextQuery is an FTS5 MATCH expression searched across name,
	// type_line, oracle_text and face_oracle_texts. Supports FTS5
	// syntax (AND, OR, NEAR, NOT, quoted phrases).
	TextQuery string

	NameContains string

	// TypeContainsAny matches type_line against any of the substrings.
	TypeContainsAny []string

	// OracleContainsAny matches oracle_text or face_oracle_texts
	// against any of the patterns.
	OracleContainsAny []string

	CMCMin *float64
	CMCMax *float64

	PowerMin     *float64
	PowerMax     *float64
	ToughnessMin *float64
	ToughnessMax *float64

	// ColorsAny matches cards whose printed colors include any of the
	// given letters. Not a commander legality check.
	ColorsAny string

	// CommanderCI, when non-nil, restricts results to cards whose
	// color identity is a subset of the given identity. The empty
	// string means colorless only; nil means unconstrained.
	CommanderCI *string

	// LegalFormat and LegalValue filter on a legal_* column, e.g.
	// format "commander" with value "legal". LegalValue defaults to
	// "legal" when LegalFormat is set.
	LegalFormat string
	LegalValue  string

	Rarity      string
	SetCode     string
	PriceUSDMax *float64

	KeywordsAny     []string
	MechanicTagsAny []string

	// GameChanger filters on the game-changers list. Nil means no
	// filter; false excludes listed cards.
	GameChanger *bool

	// IsCommander restricts results to cards that can sit in the
	// command zone: legendary creatures, or cards whose text says
	// they can be your commander.
	IsCommander bool

	// RawWhere is appended verbatim as an extra WHERE conjunct. It is
	// an escape hatch for trusted callers only.
	RawWhere string

	Limit  int
	Offset int

	// OrderBy is one of edhrec_rank, cmc, price_usd, name,
	// released_at, power. Defaults to edhrec_rank with NULL ranks
	// sorted last.
	OrderBy  string
	OrderDir string
}

// SimilarOptions tunes FindSimilar.
type SimilarOptions struct {
	CommanderCI        *string
	CommanderLegalOnly bool
	Limit              int
}

// SimilarCard is a search hit with its attribute-overlap score.
type SimilarCard struct {
	models.Card
	Score int `json:"similarity_score"`
}

// CardRepository provides read access to the cards table.
type CardRepository struct {
	db *DB
}

// NewCardRepository creates a card repository over an open database.
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `c."id", c."name", c."mana_cost", c."cmc", c."type_line", c."oracle_text",
	c."face_names", c."face_mana_costs", c."face_type_lines", c."face_oracle_texts",
	c."power", c."toughness", c."loyalty", c."defense",
	c."colors", c."color_identity", c."produced_mana", c."keywords", c."mechanic_tags",
	c."rarity", c."set", c."set_name", c."released_at",
	c."price_usd", c."edhrec_rank", c."game_changer",
	c."legal_commander", c."legal_vintage", c."legal_legacy", c."legal_modern", c."legal_pauper",
	c."image_normal", c."scryfall_uri"`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner, extra ...any) (*models.Card, error) {
	var c models.Card
	var (
		manaCost, oracleText, faceNames, faceManaCosts            sql.NullString
		faceTypeLines, faceOracleTexts                            sql.NullString
		power, toughness, loyalty, defense                        sql.NullString
		cardColors, colorIdentity, producedMana, keywords         sql.NullString
		mechanicTags, rarity, setCode, setName, releasedAt        sql.NullString
		legalCommander, legalVintage, legalLegacy                 sql.NullString
		legalModern, legalPauper, imageNormal, scryfallURI        sql.NullString
		cmc, priceUSD                                             sql.NullFloat64
		edhrecRank, gameChanger                                   sql.NullInt64
	)
	dest := []any{
		&c.ID, &c.Name, &manaCost, &cmc, &c.TypeLine, &oracleText,
		&faceNames, &faceManaCosts, &faceTypeLines, &faceOracleTexts,
		&power, &toughness, &loyalty, &defense,
		&cardColors, &colorIdentity, &producedMana, &keywords, &mechanicTags,
		&rarity, &setCode, &setName, &releasedAt,
		&priceUSD, &edhrecRank, &gameChanger,
		&legalCommander, &legalVintage, &legalLegacy, &legalModern, &legalPauper,
		&imageNormal, &scryfallURI,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	c.ManaCost = manaCost.String
	c.CMC = cmc.Float64
	c.OracleText = oracleText.String
	c.FaceNames = faceNames.String
	c.FaceManaCosts = faceManaCosts.String
	c.FaceTypeLines = faceTypeLines.String
	c.FaceOracleTexts = faceOracleTexts.String
	c.Power = power.String
	c.Toughness = toughness.String
	c.Loyalty = loyalty.String
	c.Defense = defense.String
	c.Colors = cardColors.String
	c.ColorIdentity = colorIdentity.String
	c.ProducedMana = producedMana.String
	c.Keywords = keywords.String
	c.MechanicTags = mechanicTags.String
	c.Rarity = rarity.String
	c.SetCode = setCode.String
	c.SetName = setName.String
	c.ReleasedAt = releasedAt.String
	if priceUSD.Valid {
		c.PriceUSD = &priceUSD.Float64
	}
	if edhrecRank.Valid {
		c.EDHRECRank = &edhrecRank.Int64
	}
	c.GameChanger = gameChanger.Valid && gameChanger.Int64 == 1
	c.LegalCommander = legalCommander.String
	c.LegalVintage = legalVintage.String
	c.LegalLegacy = legalLegacy.String
	c.LegalModern = legalModern.String
	c.LegalPauper = legalPauper.String
	c.ImageNormal = imageNormal.String
	c.ScryfallURI = scryfallURI.String
	return &c, nil
}

// GetByID returns the card with the given Scryfall oracle ID.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	query := fmt.Sprintf(`SELECT %s FROM cards c WHERE c.id = ?`, cardColumns)
	card, err := scanCard(r.db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card id %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card by id: %w", err)
	}
	return card, nil
}

// GetByName looks up a card by name with progressively looser matching:
// exact (case-insensitive), then prefix, then substring, then FTS as a
// last resort. Ambiguous partial matches resolve to the most popular
// card by EDHREC rank.
func (r *CardRepository) GetByName(ctx context.Context, name string) (*models.Card, error) {
	exact := fmt.Sprintf(`SELECT %s FROM cards c WHERE c.name = ? COLLATE NOCASE`, cardColumns)
	card, err := scanCard(r.db.conn.QueryRowContext(ctx, exact, name))
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up card %q: %w", name, err)
	}

	partial := fmt.Sprintf(`SELECT %s FROM cards c
		WHERE c.name LIKE ? COLLATE NOCASE
		ORDER BY c.edhrec_rank IS NULL, c.edhrec_rank ASC LIMIT 1`, cardColumns)
	for _, pattern := range []string{name + "%", "%" + name + "%"} {
		card, err = scanCard(r.db.conn.QueryRowContext(ctx, partial, pattern))
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to look up card %q: %w", name, err)
		}
	}

	fts := fmt.Sprintf(`SELECT %s FROM cards c
		JOIN cards_fts ON cards_fts.rowid = c.rowid
		WHERE cards_fts MATCH ?
		ORDER BY c.edhrec_rank IS NULL, c.edhrec_rank ASC LIMIT 1`, cardColumns)
	card, err = scanCard(r.db.conn.QueryRowContext(ctx, fts, ftsQuote(name)))
	if err == nil {
		return card, nil
	}
	// FTS can choke on punctuation; treat any failure here as no match.
	return nil, fmt.Errorf("card %q: %w", name, ErrNotFound)
}

// ftsQuote turns a card name into a phrase query so apostrophes and
// commas do not break FTS5 syntax.
func ftsQuote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Resolve looks up a batch of names. It returns the cards found keyed
// by the requested name, plus the names that matched nothing. Names of
// double-faced cards match on their front face as well.
func (r *CardRepository) Resolve(ctx context.Context, names []string) (map[string]*models.Card, []string, error) {
	found := make(map[string]*models.Card, len(names))
	var missing []string

	exact := fmt.Sprintf(`SELECT %s FROM cards c WHERE c.name = ? COLLATE NOCASE`, cardColumns)
	front := fmt.Sprintf(`SELECT %s FROM cards c WHERE c.name LIKE ? COLLATE NOCASE LIMIT 1`, cardColumns)

	for _, name := range names {
		card, err := scanCard(r.db.conn.QueryRowContext(ctx, exact, name))
		if errors.Is(err, sql.ErrNoRows) {
			// A decklist may name only the front face of a DFC.
			card, err = scanCard(r.db.conn.QueryRowContext(ctx, front, name+" // %"))
		}
		if errors.Is(err, sql.ErrNoRows) {
			missing = append(missing, name)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve card %q: %w", name, err)
		}
		found[name] = card
	}
	return found, missing, nil
}

// Search runs a structured card search. An invalid OrderBy or
// LegalFormat fails fast rather than silently changing the query.
func (r *CardRepository) Search(ctx context.Context, f Filters) ([]*models.Card, error) {
	query, params, err := buildSearch(f)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}
	return cards, nil
}

func buildSearch(f Filters) (string, []any, error) {
	if f.OrderBy == "" {
		f.OrderBy = "edhrec_rank"
	}
	orderCol, ok := orderColumns[f.OrderBy]
	if !ok {
		return "", nil, fmt.Errorf("order by %q: %w", f.OrderBy, ErrBadSort)
	}
	if f.LegalFormat != "" && !legalFormats[strings.ToLower(f.LegalFormat)] {
		return "", nil, fmt.Errorf("format %q: %w", f.LegalFormat, ErrBadFormat)
	}

	var where []string
	var params []any

	if f.TextQuery != "" {
		where = append(where, "cards_fts MATCH ?")
		params = append(params, f.TextQuery)
	}
	if f.NameContains != "" {
		where = append(where, "c.name LIKE ?")
		params = append(params, "%"+f.NameContains+"%")
	}
	if clause, p := likeAny("c.type_line", f.TypeContainsAny); clause != "" {
		where = append(where, clause)
		params = append(params, p...)
	}
	if len(f.OracleContainsAny) > 0 {
		var clauses []string
		for _, pattern := range f.OracleContainsAny {
			clauses = append(clauses, "(c.oracle_text LIKE ? OR c.face_oracle_texts LIKE ?)")
			params = append(params, "%"+pattern+"%", "%"+pattern+"%")
		}
		where = append(where, "("+strings.Join(clauses, " OR ")+")")
	}
	if f.CMCMin != nil {
		where = append(where, "c.cmc >= ?")
		params = append(params, *f.CMCMin)
	}
	if f.CMCMax != nil {
		where = append(where, "c.cmc <= ?")
		params = append(params, *f.CMCMax)
	}
	if f.PowerMin != nil {
		where = append(where, "CAST(c.power AS REAL) >= ?")
		params = append(params, *f.PowerMin)
	}
	if f.PowerMax != nil {
		where = append(where, "CAST(c.power AS REAL) <= ?")
		params = append(params, *f.PowerMax)
	}
	if f.ToughnessMin != nil {
		where = append(where, "CAST(c.toughness AS REAL) >= ?")
		params = append(params, *f.ToughnessMin)
	}
	if f.ToughnessMax != nil {
		where = append(where, "CAST(c.toughness AS REAL) <= ?")
		params = append(params, *f.ToughnessMax)
	}
	if f.ColorsAny != "" {
		var clauses []string
		for _, c := range colors.Parse(f.ColorsAny) {
			clauses = append(clauses, "c.colors LIKE ?")
			params = append(params, "%"+string(c)+"%")
		}
		if len(clauses) > 0 {
			where = append(where, "("+strings.Join(clauses, " OR ")+")")
		}
	}
	if f.CommanderCI != nil {
		clause, p := colors.SubsetClause(*f.CommanderCI)
		where = append(where, strings.ReplaceAll(clause, "color_identity", "c.color_identity"))
		params = append(params, p...)
	}
	if f.LegalFormat != "" {
		value := f.LegalValue
		if value == "" {
			value = "legal"
		}
		where = append(where, fmt.Sprintf(`c."legal_%s" = ?`, strings.ToLower(f.LegalFormat)))
		params = append(params, value)
	}
	if f.Rarity != "" {
		where = append(where, "c.rarity = ?")
		params = append(params, strings.ToLower(f.Rarity))
	}
	if f.SetCode != "" {
		where = append(where, `c."set" = ?`)
		params = append(params, f.SetCode)
	}
	if f.PriceUSDMax != nil {
		where = append(where, "(c.price_usd IS NOT NULL AND c.price_usd <= ?)")
		params = append(params, *f.PriceUSDMax)
	}
	if clause, p := likeAny("c.keywords", f.KeywordsAny); clause != "" {
		where = append(where, clause)
		params = append(params, p...)
	}
	if clause, p := likeAny("c.mechanic_tags", f.MechanicTagsAny); clause != "" {
		where = append(where, clause)
		params = append(params, p...)
	}
	if f.GameChanger != nil {
		if *f.GameChanger {
			where = append(where, "c.game_changer = 1")
		} else {
			where = append(where, "(c.game_changer IS NULL OR c.game_changer = 0)")
		}
	}
	if f.IsCommander {
		where = append(where, "c.type_line LIKE '%Legendary%'")
		where = append(where, "(c.type_line LIKE '%Creature%' OR c.oracle_text LIKE '%can be your commander%')")
	}
	if f.RawWhere != "" {
		where = append(where, "("+f.RawWhere+")")
	}

	whereSQL := "1=1"
	if len(where) > 0 {
		whereSQL = strings.Join(where, " AND ")
	}

	dir := "ASC"
	if strings.EqualFold(f.OrderDir, "DESC") {
		dir = "DESC"
	}
	orderClause := fmt.Sprintf("%s %s", orderCol, dir)
	if f.OrderBy == "edhrec_rank" {
		orderClause = fmt.Sprintf("%s IS NULL, %s %s", orderCol, orderCol, dir)
	}

	ftsJoin := ""
	if f.TextQuery != "" {
		ftsJoin = "JOIN cards_fts ON cards_fts.rowid = c.rowid"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := fmt.Sprintf(`SELECT %s
		FROM cards c
		%s
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, cardColumns, ftsJoin, whereSQL, orderClause)
	params = append(params, limit, f.Offset)
	return query, params, nil
}

func likeAny(column string, needles []string) (string, []any) {
	if len(needles) == 0 {
		return "", nil
	}
	var clauses []string
	var params []any
	for _, n := range needles {
		clauses = append(clauses, column+" LIKE ?")
		params = append(params, "%"+n+"%")
	}
	return "(" + strings.Join(clauses, " OR ") + ")", params
}

// typeStoplist holds supertypes and generic card types that carry no
// similarity signal.
var typeStoplist = map[string]bool{
	"Legendary": true, "Basic": true, "Snow": true, "World": true,
	"Ongoing": true, "—": true, "Creature": true, "Artifact": true,
	"Enchantment": true, "Instant": true, "Sorcery": true,
	"Planeswalker": true, "Land": true, "Battle": true,
	"Tribal": true, "Kindred": true,
}

// FindSimilar finds cards resembling the named card by overlapping
// keywords, mechanic tags, and type-line tokens. Mechanic tags weigh
// heaviest, then keywords, then creature types and other type tokens.
// The seed card itself is excluded and only positive scores return.
func (r *CardRepository) FindSimilar(ctx context.Context, name string, opts SimilarOptions) ([]*SimilarCard, error) {
	seed, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	keywords := seed.KeywordList()
	tags := seed.MechanicTagList()
	var typeTokens []string
	for _, t := range strings.Fields(seed.TypeLine) {
		if !typeStoplist[t] && len(t) > 2 {
			typeTokens = append(typeTokens, t)
		}
	}
	if len(keywords) > 8 {
		keywords = keywords[:8]
	}
	if len(tags) > 8 {
		tags = tags[:8]
	}
	if len(typeTokens) > 5 {
		typeTokens = typeTokens[:5]
	}
	if len(keywords) == 0 && len(tags) == 0 && len(typeTokens) == 0 {
		return nil, nil
	}

	var scoreParts []string
	var scoreParams []any
	for _, kw := range keywords {
		scoreParts = append(scoreParts, "(CASE WHEN c.keywords LIKE ? THEN 2 ELSE 0 END)")
		scoreParams = append(scoreParams, "%"+kw+"%")
	}
	for _, tag := range tags {
		scoreParts = append(scoreParts, "(CASE WHEN c.mechanic_tags LIKE ? THEN 3 ELSE 0 END)")
		scoreParams = append(scoreParams, "%"+tag+"%")
	}
	for _, tt := range typeTokens {
		scoreParts = append(scoreParts, "(CASE WHEN c.type_line LIKE ? THEN 1 ELSE 0 END)")
		scoreParams = append(scoreParams, "%"+tt+"%")
	}
	scoreExpr := strings.Join(scoreParts, " + ")

	ciClause := "1=1"
	var ciParams []any
	if opts.CommanderCI != nil {
		clause, p := colors.SubsetClause(*opts.CommanderCI)
		ciClause = strings.ReplaceAll(clause, "color_identity", "c.color_identity")
		ciParams = p
	}
	legalClause := "1=1"
	if opts.CommanderLegalOnly {
		legalClause = "c.legal_commander = 'legal'"
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s, (%s) AS similarity_score
		FROM cards c
		WHERE c.name != ?
		  AND (%s)
		  AND %s
		  AND (%s) > 0
		ORDER BY similarity_score DESC, c.edhrec_rank IS NULL, c.edhrec_rank ASC
		LIMIT ?`, cardColumns, scoreExpr, ciClause, legalClause, scoreExpr)

	// The score expression appears twice, so its params do too.
	var params []any
	params = append(params, scoreParams...)
	params = append(params, seed.Name)
	params = append(params, ciParams...)
	params = append(params, scoreParams...)
	params = append(params, limit)

	rows, err := r.db.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar cards: %w", err)
	}
	defer rows.Close()

	var results []*SimilarCard
	for rows.Next() {
		var score int
		card, err := scanCard(rows, &score)
		if err != nil {
			return nil, fmt.Errorf("failed to scan similar card row: %w", err)
		}
		results = append(results, &SimilarCard{Card: *card, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate similar card rows: %w", err)
	}
	return results, nil
}
