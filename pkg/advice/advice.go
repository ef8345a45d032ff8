// Package advice maps each diagnosis to static treatment and prevention
// guidance. The dictionary is total over the label set; a missing entry is
// a build-time defect enforced by the package tests, never a runtime case.
package advice

import (
	"github.com/cropsight/cropsight/pkg/types"
)

var records = map[types.Label]types.AdviceRecord{
	types.Healthy: {
		Severity: types.SeverityLow,
		Treatment: map[types.Language]string{
			types.LangEnglish: "No treatment needed. Keep monitoring leaves weekly for early signs of disease.",
			types.LangHindi:   "किसी उपचार की आवश्यकता नहीं है। रोग के शुरुआती लक्षणों के लिए हर सप्ताह पत्तियों की निगरानी करते रहें।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Maintain balanced fertilization, proper spacing, and avoid overhead watering late in the day.",
			types.LangHindi:   "संतुलित उर्वरक, उचित दूरी बनाए रखें और शाम को ऊपर से सिंचाई करने से बचें।",
		},
	},
	types.EarlyBlight: {
		Severity: types.SeverityMedium,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Remove affected leaves and apply a copper-based or chlorothalonil fungicide every 7-10 days.",
			types.LangHindi:   "प्रभावित पत्तियों को हटा दें और हर 7-10 दिनों में तांबा-आधारित या क्लोरोथालोनिल कवकनाशी का छिड़काव करें।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Rotate crops on a 2-3 year cycle, mulch around stems, and water at the soil line.",
			types.LangHindi:   "2-3 वर्ष के चक्र में फसल बदलें, तनों के चारों ओर मल्च लगाएं और जड़ के पास पानी दें।",
		},
	},
	types.LateBlight: {
		Severity: types.SeverityHigh,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Destroy infected plants immediately and treat surrounding plants with a systemic fungicide.",
			types.LangHindi:   "संक्रमित पौधों को तुरंत नष्ट करें और आसपास के पौधों पर सिस्टमिक कवकनाशी का उपयोग करें।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Plant certified disease-free seed, ensure good air circulation, and avoid wet foliage overnight.",
			types.LangHindi:   "प्रमाणित रोग-मुक्त बीज लगाएं, अच्छा वायु संचार सुनिश्चित करें और रात भर पत्तियों को गीला न रहने दें।",
		},
	},
	types.BacterialSpot: {
		Severity: types.SeverityMedium,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Prune infected tissue with sterilized tools and apply copper bactericide at first sign of spots.",
			types.LangHindi:   "स्टरलाइज़ किए गए औज़ारों से संक्रमित भाग काटें और धब्बे दिखते ही तांबा जीवाणुनाशक लगाएं।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Use drip irrigation, disinfect tools between plants, and avoid working in wet fields.",
			types.LangHindi:   "ड्रिप सिंचाई का उपयोग करें, पौधों के बीच औज़ार कीटाणुरहित करें और गीले खेत में काम करने से बचें।",
		},
	},
	types.PowderyMildew: {
		Severity: types.SeverityMedium,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Spray affected foliage with sulfur or potassium bicarbonate solution weekly until cleared.",
			types.LangHindi:   "प्रभावित पत्तियों पर सल्फर या पोटैशियम बाइकार्बोनेट घोल का साप्ताहिक छिड़काव करें जब तक रोग समाप्त न हो।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Grow resistant varieties, prune for airflow, and avoid excess nitrogen fertilizer.",
			types.LangHindi:   "प्रतिरोधी किस्में उगाएं, वायु प्रवाह के लिए छंटाई करें और अधिक नाइट्रोजन उर्वरक से बचें।",
		},
	},
	types.LeafRust: {
		Severity: types.SeverityMedium,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Remove and destroy rusted leaves, then apply a protectant fungicide such as mancozeb.",
			types.LangHindi:   "जंग लगी पत्तियों को हटाकर नष्ट करें, फिर मैनकोज़ेब जैसे सुरक्षात्मक कवकनाशी का उपयोग करें।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Avoid overhead irrigation, clear plant debris after harvest, and space plants generously.",
			types.LangHindi:   "ऊपर से सिंचाई से बचें, कटाई के बाद पौधों का मलबा साफ करें और पौधों में पर्याप्त दूरी रखें।",
		},
	},
	types.MosaicVirus: {
		Severity: types.SeverityHigh,
		Treatment: map[types.Language]string{
			types.LangEnglish: "There is no cure; remove and destroy infected plants to stop the spread.",
			types.LangHindi:   "इसका कोई इलाज नहीं है; फैलाव रोकने के लिए संक्रमित पौधों को हटाकर नष्ट करें।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Control aphid vectors, wash hands and tools after handling plants, and use virus-free seed.",
			types.LangHindi:   "एफिड वाहकों को नियंत्रित करें, पौधों को छूने के बाद हाथ और औज़ार धोएं और वायरस-मुक्त बीज का उपयोग करें।",
		},
	},
	types.Anthracnose: {
		Severity: types.SeverityMedium,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Cut out infected twigs and fruit, then spray with a copper fungicide during cool wet spells.",
			types.LangHindi:   "संक्रमित टहनियों और फलों को काट दें, फिर ठंडे नम मौसम में तांबा कवकनाशी का छिड़काव करें।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Improve drainage, rake up fallen leaves, and avoid wounding stems during cultivation.",
			types.LangHindi:   "जल निकासी सुधारें, गिरी हुई पत्तियां इकट्ठा करें और खेती के दौरान तनों को चोट से बचाएं।",
		},
	},
	types.DownyMildew: {
		Severity: types.SeverityHigh,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Apply a phosphonate or metalaxyl fungicide promptly; remove heavily infected plants.",
			types.LangHindi:   "फॉस्फोनेट या मेटालैक्सिल कवकनाशी का तुरंत उपयोग करें; अत्यधिक संक्रमित पौधों को हटा दें।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Water early in the morning, thin the canopy, and choose resistant cultivars where available.",
			types.LangHindi:   "सुबह जल्दी पानी दें, घनी पत्तियों को पतला करें और उपलब्ध हो तो प्रतिरोधी किस्में चुनें।",
		},
	},
	types.SeptoriaLeafSpot: {
		Severity: types.SeverityMedium,
		Treatment: map[types.Language]string{
			types.LangEnglish: "Strip lower infected leaves and apply chlorothalonil or copper fungicide every 7 days.",
			types.LangHindi:   "नीचे की संक्रमित पत्तियां हटाएं और हर 7 दिनों में क्लोरोथालोनिल या तांबा कवकनाशी लगाएं।",
		},
		Prevention: map[types.Language]string{
			types.LangEnglish: "Mulch to stop soil splash, stake plants off the ground, and rotate away from nightshades.",
			types.LangHindi:   "मिट्टी के छींटों से बचाव के लिए मल्च लगाएं, पौधों को सहारा दें और नाइटशेड फसलों से फसल चक्र बदलें।",
		},
	},
}

// Lookup returns the advice record for a diagnosis. The dictionary covers
// every label; Lookup panics on a label outside the set because that can
// only happen through a programming error upstream.
func Lookup(label types.Label) types.AdviceRecord {
	record, ok := records[label]
	if !ok {
		panic("advice: no record for label " + string(label))
	}
	return record
}
