package services

import "spiritualgifts/models"

var defaultGiftDescriptions = []models.GiftDescription{
	{GiftCategory: "Teaching", Description: "The Spirit-given ability to deeply study, accurately interpret, clearly explain, and faithfully apply God's Word so that others grow toward spiritual maturity in Christ."},
	{GiftCategory: "Exhorting", Description: "The Spirit-given ability to encourage, comfort, and urge others toward obedience, faithfulness, and spiritual growth through words of counsel, comfort, or challenge."},
	{GiftCategory: "Prophesying", Description: "The Spirit-enabled ability to boldly proclaim God's written Word with passion, clarity and conviction, exposing sin, calling for repentance, and building up the church in holiness."},
	{GiftCategory: "Word of Knowledge", Description: "The Spirit-given ability to deeply understand, analyze, and articulate biblical truths and doctrinal insights with intellectual clarity and precision."},
	{GiftCategory: "Word of Wisdom", Description: "The Spirit-given ability to apply biblical truths and spiritual principles wisely to life situations, guiding others in godly and practical decision-making."},
	{GiftCategory: "Evangelism", Description: "The Spirit-given ability to effectively share the gospel with unbelievers and lead them to faith in Jesus Christ with clarity and conviction."},
}

var defaultQuestions = []models.Question{
	{GiftCategory: "Teaching", QuestionText: "I am disciplined and willing to study hard, sacrifice personal time and spend hours in preparing for speaking sessions."},
	{GiftCategory: "Teaching", QuestionText: "God enables me to accurately interpret, clearly explain and apply His Word."},
	{GiftCategory: "Teaching", QuestionText: "When someone asks a question about the Bible, I enjoy researching it and responding thoughtfully."},
	{GiftCategory: "Teaching", QuestionText: `Other people often come to me asking "can you explain that passage?"`},
	{GiftCategory: "Teaching", QuestionText: "I can easily organize my thoughts, structure my sharing and communicate clearly when I teach."},

	{GiftCategory: "Exhorting", QuestionText: "I easily notice when someone is discouraged and feel naturally moved to encourage them."},
	{GiftCategory: "Exhorting", QuestionText: "When people share their burdens, I feel motivated to walk alongside them and uplift them."},
	{GiftCategory: "Exhorting", QuestionText: "My teaching is more devotional in nature and focused on the doing aspect rather than revealing in-depth truths from God's Word."},
	{GiftCategory: "Exhorting", QuestionText: "People often say they feel encouraged or motivated after I speak or teach."},
	{GiftCategory: "Exhorting", QuestionText: "I enjoy mentoring, discipling, or counselling others personally."},

	{GiftCategory: "Prophesying", QuestionText: "I have a strong hatred for sin and a deep passion for holiness, and I feel called to confront and address these matters in the church."},
	{GiftCategory: "Prophesying", QuestionText: "I have a strong desire to help others grow spiritually and live according to God's Word."},
	{GiftCategory: "Prophesying", QuestionText: "When I speak or teach, I do so with urgency and conviction, wanting people to respond."},
	{GiftCategory: "Prophesying", QuestionText: "I'm willing to confront issues of moral compromise in the church as the Spirit leads."},
	{GiftCategory: "Prophesying", QuestionText: "I feel a strong burden for the church to be pure, truthful, and spiritually active rather than passive and comfortable."},

	{GiftCategory: "Word of Knowledge", QuestionText: "I often see connections, themes, and patterns in Scripture that others might overlook."},
	{GiftCategory: "Word of Knowledge", QuestionText: "When I speak from God's Word, it is usually rich in factual, historical, and contextual insights."},
	{GiftCategory: "Word of Knowledge", QuestionText: "I believe God has equipped me to help people understand biblical truths in-depth than just teaching the practical applications."},
	{GiftCategory: "Word of Knowledge", QuestionText: "I make good use of various study tools and resources to find accurate biblical information."},
	{GiftCategory: "Word of Knowledge", QuestionText: "I often explain ideas in an academic way by connecting different Bible passages to show one unified truth."},

	{GiftCategory: "Word of Wisdom", QuestionText: "I may not remember many facts or historical details, but applying Scripture to real life comes naturally to me."},
	{GiftCategory: "Word of Wisdom", QuestionText: "I can easily recognise how a biblical principle should be lived out in a specific circumstance."},
	{GiftCategory: "Word of Wisdom", QuestionText: "I can sense when a decision isn't spiritually wise, even if it seems acceptable for others, and help others think it through."},
	{GiftCategory: "Word of Wisdom", QuestionText: "In preparing to teach, I focus on practical wisdom rather than theoretical knowledge."},
	{GiftCategory: "Word of Wisdom", QuestionText: "When I speak from God's Word, I focus on finding practical lessons and applications."},

	{GiftCategory: "Evangelism", QuestionText: "I have a strong desire to share my faith with unbelievers."},
	{GiftCategory: "Evangelism", QuestionText: "I find it easy to initiate spiritual conversations with strangers, friends and unbelievers."},
	{GiftCategory: "Evangelism", QuestionText: "I'm not discouraged by rejection or tough questions when sharing my faith, I see them as part of evangelism."},
	{GiftCategory: "Evangelism", QuestionText: "I am aware of people in my circle (work, college, community) who do not know about Jesus and feel a personal burden to reach them."},
	{GiftCategory: "Evangelism", QuestionText: `I am comfortable asking someone, "have you heard about Jesus?" or "have you thought about life after death?"`},
}
