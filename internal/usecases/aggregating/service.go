package aggregating

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/pkg/utils"
)

type Aggregator interface {
	Aggregate(records []domain.AdRecord) []*domain.AdGroup
	FilterByWindow(groups []*domain.AdGroup, windowHours int) []*domain.AdGroup
}

// Service implementa a deduplicação de trilha dupla: um índice por URL
// normalizada e outro por hash de conteúdo. Um registro entra em um grupo
// existente se qualquer uma das trilhas casar.
type Service struct {
	scorer Scorer
	now    func() time.Time
}

func NewService(scorer Scorer) *Service {
	if scorer == nil {
		scorer = CountScorer
	}

	return &Service{
		scorer: scorer,
		now:    time.Now,
	}
}

// groupBuilder acumula o estado de um grupo durante a agregação. Depois de uma
// união de grupos, o absorvido é marcado como morto e descartado no final.
type groupBuilder struct {
	group  *domain.AdGroup
	urls   map[string]bool
	hashes map[string]bool
	copies map[string]bool
	dead   bool
}

// Aggregate deduplica os registros e retorna os grupos ordenados por
// intensidade decrescente, com empates resolvidos pelo first_seen mais antigo.
func (s *Service) Aggregate(records []domain.AdRecord) []*domain.AdGroup {
	byURL := make(map[string]*groupBuilder)
	byHash := make(map[string]*groupBuilder)
	builders := make([]*groupBuilder, 0)

	for i := range records {
		record := &records[i]

		normURL := NormalizeURL(record.LinkURL)
		contentHash := record.ContentHash
		if contentHash == "" {
			contentHash = DeriveContentHash(record.CopyText, record.ImageURL)
		}

		var urlGroup, hashGroup *groupBuilder
		if normURL != "" {
			urlGroup = byURL[normURL]
		}
		if contentHash != "" {
			hashGroup = byHash[contentHash]
		}

		// As duas trilhas apontam para grupos distintos: o registro prova que
		// são o mesmo criativo, então os grupos são unidos antes da absorção.
		// É isso que mantém o resultado independente da ordem dos registros.
		if urlGroup != nil && hashGroup != nil && urlGroup != hashGroup {
			unite(urlGroup, hashGroup, byURL, byHash)
			hashGroup = urlGroup
		}

		target := urlGroup
		if target == nil {
			target = hashGroup
		}

		if target == nil {
			// Registro sem chave alguma vira um grupo próprio e nunca é mesclado
			builder := newBuilder(record, normURL, contentHash)
			builders = append(builders, builder)
			if normURL != "" {
				byURL[normURL] = builder
			}
			if contentHash != "" {
				byHash[contentHash] = builder
			}
			continue
		}

		target.absorb(record)

		if normURL != "" && !target.urls[normURL] {
			target.urls[normURL] = true
			byURL[normURL] = target
		}
		if contentHash != "" && !target.hashes[contentHash] {
			target.hashes[contentHash] = true
			byHash[contentHash] = target
		}
	}

	now := s.now()
	groups := make([]*domain.AdGroup, 0, len(builders))
	for _, builder := range builders {
		if builder.dead {
			continue
		}
		groups = append(groups, builder.finalize(s.scorer, now))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Intensity != groups[j].Intensity {
			return groups[i].Intensity > groups[j].Intensity
		}
		return beforeWithUnknownLast(groups[i].FirstSeen, groups[j].FirstSeen)
	})

	logrus.WithFields(logrus.Fields{
		"records": len(records),
		"groups":  len(groups),
	}).Debug("aggregating: dedup finished")

	return groups
}

// FilterByWindow mantém apenas grupos vistos pela primeira vez dentro da janela.
// Grupos sem first_seen conhecido são mantidos.
func (s *Service) FilterByWindow(groups []*domain.AdGroup, windowHours int) []*domain.AdGroup {
	if windowHours <= 0 {
		return groups
	}

	cutoff := s.now().Add(-time.Duration(windowHours) * time.Hour)

	filtered := make([]*domain.AdGroup, 0, len(groups))
	for _, group := range groups {
		if group.FirstSeen.IsZero() || !group.FirstSeen.Before(cutoff) {
			filtered = append(filtered, group)
		}
	}

	return filtered
}

func newBuilder(record *domain.AdRecord, normURL, contentHash string) *groupBuilder {
	builder := &groupBuilder{
		group: &domain.AdGroup{
			AdArchiveIDs:  appendIfNotEmpty(nil, record.AdArchiveID),
			PageID:        record.PageID,
			PageName:      record.PageName,
			Title:         record.Title,
			CopyText:      record.CopyText,
			CTA:           record.CTA,
			LinkURL:       record.LinkURL,
			NormalizedURL: normURL,
			ImageURL:      record.ImageURL,
			VideoURL:      record.VideoURL,
			ContentHash:   contentHash,
			DisplayFormat: record.DisplayFormat,
			IsVideo:       record.IsVideo,
			FirstSeen:     record.FirstSeen,
			Occurrences:   1,
		},
		urls:   make(map[string]bool),
		hashes: make(map[string]bool),
		copies: make(map[string]bool),
	}

	if normURL != "" {
		builder.urls[normURL] = true
	}
	if contentHash != "" {
		builder.hashes[contentHash] = true
	}
	if record.CopyText != "" {
		builder.copies[record.CopyText] = true
	}

	return builder
}

// absorb incorpora um registro ao grupo: incrementa a contagem, guarda a
// variante de texto e mantém o first_seen mais antigo como representante.
func (b *groupBuilder) absorb(record *domain.AdRecord) {
	b.group.Occurrences++
	b.group.AdArchiveIDs = appendIfNotEmpty(b.group.AdArchiveIDs, record.AdArchiveID)

	if record.CopyText != "" && !b.copies[record.CopyText] {
		b.copies[record.CopyText] = true
	}

	if earlier(record.FirstSeen, b.group.FirstSeen) {
		b.group.FirstSeen = record.FirstSeen
		b.group.Title = record.Title
		b.group.CopyText = record.CopyText
		b.group.CTA = record.CTA
		b.group.PageID = record.PageID
		b.group.PageName = record.PageName
		if record.ImageURL != "" {
			b.group.ImageURL = record.ImageURL
		}
		if record.VideoURL != "" {
			b.group.VideoURL = record.VideoURL
		}
	}
}

// unite funde o grupo absorvido no sobrevivente e repontera os índices
func unite(survivor, absorbed *groupBuilder, byURL, byHash map[string]*groupBuilder) {
	survivor.group.Occurrences += absorbed.group.Occurrences
	survivor.group.AdArchiveIDs = append(survivor.group.AdArchiveIDs, absorbed.group.AdArchiveIDs...)

	if earlier(absorbed.group.FirstSeen, survivor.group.FirstSeen) {
		survivor.group.FirstSeen = absorbed.group.FirstSeen
		survivor.group.Title = absorbed.group.Title
		survivor.group.CopyText = absorbed.group.CopyText
		survivor.group.CTA = absorbed.group.CTA
		survivor.group.PageID = absorbed.group.PageID
		survivor.group.PageName = absorbed.group.PageName
	}

	for copyText := range absorbed.copies {
		survivor.copies[copyText] = true
	}
	for normURL := range absorbed.urls {
		survivor.urls[normURL] = true
		byURL[normURL] = survivor
	}
	for contentHash := range absorbed.hashes {
		survivor.hashes[contentHash] = true
		byHash[contentHash] = survivor
	}

	absorbed.dead = true
}

func (b *groupBuilder) finalize(scorer Scorer, now time.Time) *domain.AdGroup {
	group := b.group

	sort.Strings(group.AdArchiveIDs)

	if len(b.copies) > 1 {
		variants := make([]string, 0, len(b.copies))
		for copyText := range b.copies {
			variants = append(variants, copyText)
		}
		sort.Strings(variants)
		group.CopyVariants = variants
	}

	group.Intensity = utils.RoundWithTwoDecimalPlace(scorer(group.Occurrences, group.FirstSeen, now))

	return group
}

// earlier compara datas tratando o zero como desconhecido (nunca "mais antigo")
func earlier(candidate, current time.Time) bool {
	if candidate.IsZero() {
		return false
	}
	if current.IsZero() {
		return true
	}
	return candidate.Before(current)
}

// beforeWithUnknownLast ordena first_seen ascendente deixando desconhecidos no fim
func beforeWithUnknownLast(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	if b.IsZero() {
		return true
	}
	return a.Before(b)
}

func appendIfNotEmpty(ids []string, id string) []string {
	if id == "" {
		return ids
	}
	return append(ids, id)
}
