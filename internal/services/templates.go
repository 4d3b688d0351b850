package services

import (
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// mealTemplate is one baseline variant for a meal slot. Ingredient phrases
// match the shopping cost table so generated plans price out cleanly.
type mealTemplate struct {
	description string
	ingredients []string
	kcal        int
}

type activityTier int

const (
	tierLow activityTier = iota
	tierModerate
	tierHigh
)

// tierForActivity maps the five discrete multipliers onto three template
// tiers: 1.2/1.375 low, 1.55 moderate, 1.725/1.9 high.
func tierForActivity(multiplier float64) activityTier {
	switch {
	case multiplier <= 1.375:
		return tierLow
	case multiplier < 1.65:
		return tierModerate
	default:
		return tierHigh
	}
}

var mealTemplates = map[activityTier]map[string][]mealTemplate{
	tierLow: {
		models.SlotBreakfast: {
			{"Yogurt greco con avena e frutti di bosco", []string{"125g yogurt greco", "40g avena", "150g frutti di bosco"}, 300},
			{"Uova strapazzate con pane integrale", []string{"2 uova", "2 fette pane integrale", "1 kiwi"}, 320},
			{"Porridge di avena con banana", []string{"50g avena", "200ml latte scremato", "1 banana"}, 310},
			{"Ricotta con miele e pera", []string{"100g ricotta", "25g miele", "1 pera"}, 290},
			{"Latte di mandorla con gallette e burro di arachidi", []string{"200ml latte di mandorla", "50g gallette di riso", "20g burro di arachidi"}, 300},
		},
		models.SlotMorningSnack: {
			{"Frutta fresca di stagione", []string{"1 mela"}, 90},
			{"Yogurt magro", []string{"150g yogurt magro"}, 110},
			{"Mandorle e un frutto", []string{"20g mandorle", "1 kiwi"}, 160},
			{"Gallette di riso con miele", []string{"30g gallette di riso", "15g miele"}, 150},
			{"Banana e noci", []string{"1 banana", "15g noci"}, 180},
		},
		models.SlotLunch: {
			{"Riso integrale con pollo e zucchine", []string{"70g riso integrale", "120g petto di pollo", "200g zucchine"}, 450},
			{"Pasta integrale al pomodoro con insalata", []string{"70g pasta integrale", "200g pomodori", "insalata mista", "1 cucchiaio olio extravergine"}, 440},
			{"Insalata di quinoa con ceci e verdure", []string{"70g quinoa", "100g ceci", "150g peperoni", "1 cucchiaio olio extravergine"}, 430},
			{"Merluzzo al vapore con patate dolci", []string{"150g merluzzo", "200g patate dolci", "150g fagiolini"}, 420},
			{"Farro con tonno e pomodorini", []string{"70g farro", "100g tonno al naturale", "200g pomodori"}, 440},
		},
		models.SlotAfternoonSnack: {
			{"Yogurt greco con semi di chia", []string{"125g yogurt greco", "10g semi di chia"}, 150},
			{"Frutta con cioccolato fondente", []string{"1 arancia", "20g cioccolato fondente"}, 170},
			{"Fiocchi di latte", []string{"125g fiocchi di latte"}, 120},
			{"Carote con hummus", []string{"100g carote", "100g hummus"}, 180},
			{"Mela e mandorle", []string{"1 mela", "15g mandorle"}, 160},
		},
		models.SlotDinner: {
			{"Salmone al forno con asparagi", []string{"120g salmone", "150g asparagi", "insalata mista"}, 400},
			{"Petto di tacchino con verdure grigliate", []string{"150g petto di tacchino", "200g verdure grigliate", "1 cucchiaio olio extravergine"}, 380},
			{"Frittata di uova con spinaci", []string{"2 uova", "150g spinaci", "2 fette pane integrale"}, 390},
			{"Tofu saltato con broccoli", []string{"150g tofu", "200g broccoli", "1 cucchiaio olio extravergine"}, 360},
			{"Bresaola con rucola e parmigiano", []string{"100g bresaola", "insalata mista", "30g parmigiano"}, 350},
		},
	},
	tierModerate: {
		models.SlotBreakfast: {
			{"Porridge proteico con banana e burro di arachidi", []string{"60g avena", "200ml latte scremato", "1 banana", "20g burro di arachidi"}, 420},
			{"Uova con pane integrale e avocado", []string{"2 uova", "2 fette pane integrale", "1 avocado"}, 450},
			{"Yogurt greco con avena, miele e noci", []string{"125g yogurt greco", "60g avena", "25g miele", "15g noci"}, 430},
			{"Pancake di avena con frutti di bosco", []string{"60g avena", "2 uova", "150g frutti di bosco", "15g miele"}, 440},
			{"Ricotta con gallette, miele e kiwi", []string{"100g ricotta", "50g gallette di riso", "25g miele", "1 kiwi"}, 400},
		},
		models.SlotMorningSnack: {
			{"Yogurt greco e mandorle", []string{"125g yogurt greco", "20g mandorle"}, 220},
			{"Banana con burro di arachidi", []string{"1 banana", "20g burro di arachidi"}, 230},
			{"Barretta proteica", []string{"1 barretta proteica"}, 200},
			{"Pane integrale con bresaola", []string{"2 fette pane integrale", "50g bresaola"}, 210},
			{"Frutta secca mista e una mela", []string{"20g mandorle", "15g noci", "1 mela"}, 250},
		},
		models.SlotLunch: {
			{"Riso integrale con pollo alla griglia e broccoli", []string{"80g riso integrale", "150g petto di pollo", "200g broccoli", "1 cucchiaio olio extravergine"}, 550},
			{"Pasta integrale con tonno e zucchine", []string{"80g pasta integrale", "100g tonno al naturale", "200g zucchine"}, 540},
			{"Quinoa con salmone e spinaci", []string{"70g quinoa", "120g salmone", "150g spinaci"}, 560},
			{"Couscous integrale con ceci e verdure grigliate", []string{"60g couscous integrale", "100g ceci", "200g verdure grigliate", "1 cucchiaio olio extravergine"}, 520},
			{"Piadina integrale con tacchino e insalata", []string{"1 piadina integrale", "120g petto di tacchino", "insalata mista", "200g pomodori"}, 530},
		},
		models.SlotAfternoonSnack: {
			{"Fiocchi di latte con semi di zucca", []string{"125g fiocchi di latte", "15g semi di zucca"}, 200},
			{"Frullato di latte e frutti di bosco", []string{"200ml latte scremato", "150g frutti di bosco", "15g miele"}, 210},
			{"Yogurt magro con avena", []string{"150g yogurt magro", "30g avena"}, 220},
			{"Hummus con carote e gallette", []string{"100g hummus", "100g carote", "30g gallette di riso"}, 230},
			{"Pera e cioccolato fondente", []string{"1 pera", "20g cioccolato fondente"}, 190},
		},
		models.SlotDinner: {
			{"Manzo magro con patate dolci e fagiolini", []string{"120g manzo magro", "200g patate dolci", "150g fagiolini"}, 480},
			{"Salmone con quinoa e asparagi", []string{"120g salmone", "70g quinoa", "150g asparagi"}, 500},
			{"Petto di pollo con verdure grigliate e pane", []string{"150g petto di pollo", "200g verdure grigliate", "2 fette pane integrale"}, 470},
			{"Merluzzo con lenticchie e spinaci", []string{"150g merluzzo", "100g lenticchie", "150g spinaci"}, 460},
			{"Frittata con melanzane e insalata", []string{"2 uova", "200g melanzane", "insalata mista", "30g parmigiano"}, 450},
		},
	},
	tierHigh: {
		models.SlotBreakfast: {
			{"Porridge abbondante con banana, miele e mandorle", []string{"80g avena", "200ml latte scremato", "1 banana", "25g miele", "20g mandorle"}, 550},
			{"Uova con pane integrale, avocado e yogurt", []string{"2 uova", "2 fette pane integrale", "1 avocado", "125g yogurt greco"}, 560},
			{"Pancake proteici con burro di arachidi", []string{"60g avena", "2 uova", "30g proteine in polvere", "20g burro di arachidi", "1 banana"}, 580},
			{"Yogurt greco con avena, frutti di bosco e noci", []string{"125g yogurt greco", "80g avena", "150g frutti di bosco", "30g noci"}, 540},
			{"Ricotta con pane integrale, miele e kiwi", []string{"100g ricotta", "2 fette pane integrale", "25g miele", "1 kiwi", "20g mandorle"}, 520},
		},
		models.SlotMorningSnack: {
			{"Frullato proteico con banana", []string{"30g proteine in polvere", "200ml latte scremato", "1 banana"}, 300},
			{"Pane integrale con burro di arachidi e miele", []string{"2 fette pane integrale", "20g burro di arachidi", "15g miele"}, 310},
			{"Yogurt greco con mandorle e miele", []string{"125g yogurt greco", "20g mandorle", "15g miele"}, 280},
			{"Barretta proteica e una banana", []string{"1 barretta proteica", "1 banana"}, 290},
			{"Fiocchi di latte con noci e pera", []string{"125g fiocchi di latte", "15g noci", "1 pera"}, 280},
		},
		models.SlotLunch: {
			{"Riso integrale abbondante con pollo e broccoli", []string{"100g riso integrale", "180g petto di pollo", "200g broccoli", "1 cucchiaio olio extravergine"}, 680},
			{"Pasta integrale con manzo magro e pomodori", []string{"100g pasta integrale", "120g manzo magro", "200g pomodori", "30g parmigiano"}, 700},
			{"Farro con salmone, avocado e spinaci", []string{"80g farro", "120g salmone", "1 avocado", "150g spinaci"}, 690},
			{"Quinoa con gamberetti e verdure grigliate", []string{"80g quinoa", "100g gamberetti", "200g verdure grigliate", "1 cucchiaio olio extravergine"}, 640},
			{"Couscous con ceci, tonno e peperoni", []string{"80g couscous integrale", "100g ceci", "100g tonno al naturale", "150g peperoni"}, 660},
		},
		models.SlotAfternoonSnack: {
			{"Frullato di latte, avena e frutti di bosco", []string{"200ml latte scremato", "40g avena", "150g frutti di bosco"}, 300},
			{"Yogurt greco con semi di chia e miele", []string{"125g yogurt greco", "10g semi di chia", "25g miele"}, 290},
			{"Pane integrale con hummus", []string{"2 fette pane integrale", "100g hummus"}, 310},
			{"Banana, mandorle e cioccolato fondente", []string{"1 banana", "20g mandorle", "20g cioccolato fondente"}, 320},
			{"Gallette di riso con burro di arachidi", []string{"50g gallette di riso", "20g burro di arachidi"}, 280},
		},
		models.SlotDinner: {
			{"Salmone con patate dolci e asparagi", []string{"150g salmone", "200g patate dolci", "150g asparagi"}, 600},
			{"Manzo magro con riso integrale e fagiolini", []string{"150g manzo magro", "80g riso integrale", "150g fagiolini"}, 620},
			{"Petto di tacchino con quinoa e verdure grigliate", []string{"180g petto di tacchino", "70g quinoa", "200g verdure grigliate"}, 580},
			{"Merluzzo con lenticchie, spinaci e pane", []string{"180g merluzzo", "100g lenticchie", "150g spinaci", "2 fette pane integrale"}, 590},
			{"Tofu con fagioli neri e melanzane", []string{"150g tofu", "100g fagioli neri", "200g melanzane", "1 cucchiaio olio extravergine"}, 560},
		},
	},
}
