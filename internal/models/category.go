package models

// Categories is the fixed list offered to uploaders.
var Categories = []string{
	"💻 Technology",
	"👨‍💻 Programming",
	"🌐 Web Development",
	"📱 Mobile Development",
	"📊 Data Science",
	"🤖 Artificial Intelligence",
	"☁️ Cloud Computing",
	"🛡️ Cybersecurity",
	"🏖️ Lifestyle",
	"🍳 Food and Cooking",
	"✈️ Travel",
	"🏋️‍♂️ Health and Fitness",
	"🧠 Personal Development",
	"💰 Finance and Development",
	"🏢 Business and Entrepreneurship",
	"📈 Marketing",
	"🎨 Design",
	"🎮 Gaming",
	"📷 Photography",
	"🎬 Entertainment",
	"🎓 Education",
	"🔬 Science",
	"🏛️ Politics",
	"⚽ Sports",
	"❓ Other",
}

func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
