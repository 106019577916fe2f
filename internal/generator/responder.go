package generator

import "strings"

// Reply is a canned assistant answer with follow-up prompts.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
}

type replyRule struct {
	keywords []string
	reply    Reply
}

var greeting = Reply{
	Text: "Hi! I'm your HealthVibe AI assistant. I can help you find natural remedies, answer health questions, and provide personalized wellness advice. What can I help you with today?",
	Suggestions: []string{
		"I have a headache, what natural remedies can help?",
		"What herbs are good for digestion?",
		"How can I improve my sleep naturally?",
		"I'm feeling stressed, any suggestions?",
	},
}

var replyRules = []replyRule{
	{
		keywords: []string{"headache", "head pain"},
		reply: Reply{
			Text: "For headaches, I recommend trying these natural remedies:\n\n" +
				"• **Peppermint oil**: Apply diluted peppermint oil to temples\n" +
				"• **Ginger tea**: Anti-inflammatory properties help reduce pain\n" +
				"• **Cold compress**: Apply to forehead for 15-20 minutes\n" +
				"• **Hydration**: Often headaches are caused by dehydration\n" +
				"• **Rest in dark room**: Reduce light and noise sensitivity\n\n" +
				"Try the peppermint oil first - it's often very effective for tension headaches!",
			Suggestions: []string{
				"How do I make ginger tea?",
				"What's the best way to apply peppermint oil?",
				"How long should I rest for a headache?",
			},
		},
	},
	{
		keywords: []string{"digestion", "stomach", "bloating"},
		reply: Reply{
			Text: "For digestive issues, here are some excellent natural remedies:\n\n" +
				"• **Peppermint tea**: Soothes stomach and reduces bloating\n" +
				"• **Ginger**: Fresh ginger tea aids digestion\n" +
				"• **Fennel seeds**: Chew a teaspoon after meals\n" +
				"• **Chamomile tea**: Calms digestive system\n" +
				"• **Probiotics**: Yogurt or fermented foods\n" +
				"• **Warm water with lemon**: First thing in the morning\n\n" +
				"Start with peppermint tea - it's gentle and very effective!",
			Suggestions: []string{
				"What foods should I avoid for bloating?",
				"How often should I drink peppermint tea?",
				"Are there any side effects of ginger?",
			},
		},
	},
	{
		keywords: []string{"sleep", "insomnia", "tired"},
		reply: Reply{
			Text: "For better sleep, try these natural approaches:\n\n" +
				"• **Chamomile tea**: Drink 30 minutes before bed\n" +
				"• **Lavender**: Essential oil on pillow or in bath\n" +
				"• **Magnesium**: Natural muscle relaxant\n" +
				"• **4-7-8 breathing**: Inhale 4, hold 7, exhale 8\n" +
				"• **No screens 1 hour before bed**: Blue light disrupts sleep\n" +
				"• **Cool room temperature**: 65-68°F is optimal\n" +
				"• **Consistent bedtime**: Same time every night\n\n" +
				"Chamomile tea is my top recommendation - it's very gentle and effective!",
			Suggestions: []string{
				"What's the 4-7-8 breathing technique?",
				"How much magnesium should I take?",
				"Can I use lavender oil directly on skin?",
			},
		},
	},
	{
		keywords: []string{"stress", "anxiety", "worried"},
		reply: Reply{
			Text: "For stress and anxiety, these natural remedies can help:\n\n" +
				"• **Deep breathing**: 4-7-8 technique or box breathing\n" +
				"• **Ashwagandha**: Adaptogenic herb for stress\n" +
				"• **L-theanine**: Found in green tea\n" +
				"• **Exercise**: Even 10 minutes of walking helps\n" +
				"• **Meditation**: 5-10 minutes daily\n" +
				"• **Chamomile tea**: Calming properties\n" +
				"• **Nature exposure**: Walk outside when possible\n\n" +
				"Start with deep breathing - it's free and works immediately!",
			Suggestions: []string{
				"How do I do box breathing?",
				"What's the best time to take ashwagandha?",
				"How long should I meditate?",
			},
		},
	},
	{
		keywords: []string{"cold", "flu", "sick"},
		reply: Reply{
			Text: "For cold and flu symptoms, try these natural remedies:\n\n" +
				"• **Elderberry syrup**: Boosts immune system\n" +
				"• **Ginger honey tea**: Soothes throat and reduces inflammation\n" +
				"• **Garlic**: Natural antibiotic properties\n" +
				"• **Vitamin C**: Citrus fruits or supplements\n" +
				"• **Rest**: Your body needs energy to heal\n" +
				"• **Hydration**: Lots of water and herbal teas\n" +
				"• **Steam inhalation**: With eucalyptus oil\n\n" +
				"Elderberry syrup is excellent for shortening cold duration!",
			Suggestions: []string{
				"How do I make elderberry syrup?",
				"What's the best way to use garlic?",
				"How much vitamin C should I take?",
			},
		},
	},
}

var defaultReply = Reply{
	Text: "I'd be happy to help you with that! While I'm still learning, I can provide information about:\n\n" +
		"• Natural remedies for common ailments\n" +
		"• Herbal treatments and their benefits\n" +
		"• Wellness and lifestyle advice\n" +
		"• Symptom management\n" +
		"• Preventive health measures\n\n" +
		"Could you be more specific about what you're looking for? For example, you could ask about specific symptoms, herbs, or health concerns.",
	Suggestions: []string{
		"What herbs help with inflammation?",
		"How can I boost my immune system?",
		"What are adaptogenic herbs?",
		"Tell me about natural pain relief",
	},
}

// Responder answers assistant messages from keyword groups checked in a fixed
// order.
type Responder struct{}

func (Responder) Greeting() Reply { return copyReply(greeting) }

// Reply returns the answer of the first keyword group found in message, or the
// generic answer.
func (Responder) Reply(message string) Reply {
	lower := strings.ToLower(message)
	for _, rule := range replyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return copyReply(rule.reply)
			}
		}
	}
	return copyReply(defaultReply)
}

func copyReply(r Reply) Reply {
	return Reply{Text: r.Text, Suggestions: clone(r.Suggestions)}
}
