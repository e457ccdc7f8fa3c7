package game

// DefaultDeck seeds the catalog when the cards table is empty (fresh
// installs, tests). IDs are stable so piles survive a snapshot restore.
var DefaultDeck = []Card{
	{ID: "c001", OnePoint: "dog", ThreePoint: "sled dog"},
	{ID: "c002", OnePoint: "moon", ThreePoint: "lunar eclipse"},
	{ID: "c003", OnePoint: "bread", ThreePoint: "sourdough starter"},
	{ID: "c004", OnePoint: "fire", ThreePoint: "fire extinguisher"},
	{ID: "c005", OnePoint: "boat", ThreePoint: "paddle boat"},
	{ID: "c006", OnePoint: "snow", ThreePoint: "snow blower"},
	{ID: "c007", OnePoint: "tooth", ThreePoint: "wisdom tooth"},
	{ID: "c008", OnePoint: "rain", ThreePoint: "rain check"},
	{ID: "c009", OnePoint: "egg", ThreePoint: "deviled eggs"},
	{ID: "c010", OnePoint: "hat", ThreePoint: "hard hat"},
	{ID: "c011", OnePoint: "tree", ThreePoint: "family tree"},
	{ID: "c012", OnePoint: "milk", ThreePoint: "milky way"},
	{ID: "c013", OnePoint: "door", ThreePoint: "revolving door"},
	{ID: "c014", OnePoint: "fish", ThreePoint: "fishing lure"},
	{ID: "c015", OnePoint: "star", ThreePoint: "shooting star"},
	{ID: "c016", OnePoint: "book", ThreePoint: "phone book"},
	{ID: "c017", OnePoint: "ice", ThreePoint: "ice sculpture"},
	{ID: "c018", OnePoint: "horse", ThreePoint: "rocking horse"},
	{ID: "c019", OnePoint: "salt", ThreePoint: "salt flats"},
	{ID: "c020", OnePoint: "bell", ThreePoint: "diving bell"},
	{ID: "c021", OnePoint: "shoe", ThreePoint: "horseshoe"},
	{ID: "c022", OnePoint: "wind", ThreePoint: "second wind"},
	{ID: "c023", OnePoint: "cake", ThreePoint: "wedding cake"},
	{ID: "c024", OnePoint: "road", ThreePoint: "toll road"},
	{ID: "c025", OnePoint: "bird", ThreePoint: "early bird"},
	{ID: "c026", OnePoint: "rock", ThreePoint: "rock bottom"},
	{ID: "c027", OnePoint: "key", ThreePoint: "skeleton key"},
	{ID: "c028", OnePoint: "soap", ThreePoint: "soap opera"},
	{ID: "c029", OnePoint: "night", ThreePoint: "night owl"},
	{ID: "c030", OnePoint: "hand", ThreePoint: "second hand"},
	{ID: "c031", OnePoint: "sun", ThreePoint: "sunflower seed"},
	{ID: "c032", OnePoint: "box", ThreePoint: "shadow box"},
	{ID: "c033", OnePoint: "wall", ThreePoint: "climbing wall"},
	{ID: "c034", OnePoint: "chair", ThreePoint: "musical chairs"},
	{ID: "c035", OnePoint: "corn", ThreePoint: "candy corn"},
	{ID: "c036", OnePoint: "pig", ThreePoint: "guinea pig"},
	{ID: "c037", OnePoint: "web", ThreePoint: "spider web"},
	{ID: "c038", OnePoint: "leaf", ThreePoint: "gold leaf"},
	{ID: "c039", OnePoint: "ring", ThreePoint: "boxing ring"},
	{ID: "c040", OnePoint: "storm", ThreePoint: "brainstorm"},
}
