package insighting

import (
	"fmt"

	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/pkg/utils"
)

// maxCopyRunesPerAd limita o texto de cada anúncio enviado ao modelo.
const maxCopyRunesPerAd = 500

// systemPrompt instrui o modelo a devolver duas seções marcadas. O parser
// depende dos marcadores [INSIGHT] e [REMIX_PROMPT].
const systemPrompt = `You are a senior competitive intelligence analyst for top DTC brands.
You specialize in consumer psychology, visual design trends and Meta ad strategy.

Analyze the attached competitor ad creatives (image plus copy text per ad) and produce:

1. A strategic insight covering the competitor's current promotion dynamics
   (discount depth, campaign themes, urgency tactics), reusable creative elements
   (visual style, copy framework, hook design) and overall media strategy trends.

2. A single creative remix prompt, ready to paste into an image generation tool,
   that borrows the strongest visual and copy elements observed.

Answer in plain text with exactly these two sections, in this order:

[INSIGHT]
<your strategic analysis here>

[REMIX_PROMPT]
<one self-contained image generation prompt here>

Do not wrap the answer in Markdown code fences.`

// buildParts monta a requisição multimodal: prompt de sistema, depois um bloco
// de texto e a imagem de cada criativo. As imagens vêm na ordem do ranking.
func buildParts(groups []*domain.AdGroup, images []fetchedImage) []geminiclient.Part {
	parts := make([]geminiclient.Part, 0, 1+2*len(images))
	parts = append(parts, geminiclient.Part{Text: systemPrompt})

	for _, img := range images {
		group := groups[img.groupIndex]
		parts = append(parts, geminiclient.Part{
			Text: fmt.Sprintf(
				"\n\nAd #%d:\nTitle: %s\nCopy: %s",
				img.groupIndex,
				group.Title,
				utils.TruncateRunes(group.CopyText, maxCopyRunesPerAd),
			),
		})
		parts = append(parts, geminiclient.Part{
			Data:     img.data,
			MimeType: img.mimeType,
		})
	}

	return parts
}
