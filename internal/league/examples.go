package league

// Examples are canned inputs shown next to the input field.
var Examples = []string{
	"Dragones, Tigres, Halcones, Lobos",
	"Liga de baloncesto con 12 equipos",
	"Torneo de ajedrez para 6 jugadores",
	"Real Madrid, Barcelona, Bayern, PSG",
	"Crea una liga de Valorant con 10 equipos",
	"Liga de fútbol con 8 equipos",
	"Torneo de tenis para 4 jugadores",
	"Liga de hockey sobre hielo con 6 equipos",
	"Crea una liga de baloncesto femenino con 10 equipos",
	"Torneo de voleibol para 8 equipos",
}
