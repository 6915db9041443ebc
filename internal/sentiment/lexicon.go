package sentiment

// entry holds the valence and subjectivity of one lexicon word.
type entry struct {
	polarity     float64
	subjectivity float64
}

// lexicon maps words to their sentiment weights. Values follow the
// conventions of pattern-based lexicons: polarity in [-1, 1],
// subjectivity in [0, 1]. Zero-polarity entries are deliberate; they
// mark words that are subjective but neutral in valence.
var lexicon = map[string]entry{
	// Positive.
	"good":        {0.7, 0.6},
	"great":       {0.8, 0.75},
	"excellent":   {1.0, 1.0},
	"amazing":     {0.6, 0.9},
	"awesome":     {1.0, 1.0},
	"wonderful":   {1.0, 1.0},
	"fantastic":   {0.5, 0.9},
	"perfect":     {1.0, 1.0},
	"brilliant":   {0.9, 0.9},
	"outstanding": {0.9, 0.9},
	"superb":      {0.9, 0.9},
	"love":        {0.5, 0.6},
	"loves":       {0.5, 0.6},
	"loved":       {0.7, 0.8},
	"lovely":      {0.6, 0.8},
	"like":        {0.3, 0.4},
	"liked":       {0.4, 0.5},
	"enjoy":       {0.4, 0.5},
	"enjoyed":     {0.5, 0.6},
	"happy":       {0.8, 1.0},
	"glad":        {0.5, 0.8},
	"pleased":     {0.6, 0.8},
	"satisfied":   {0.5, 0.7},
	"delighted":   {0.8, 0.9},
	"impressive":  {0.6, 0.8},
	"impressed":   {0.7, 0.8},
	"best":        {1.0, 0.3},
	"better":      {0.5, 0.5},
	"nice":        {0.6, 1.0},
	"fine":        {0.2, 0.4},
	"helpful":     {0.5, 0.5},
	"friendly":    {0.5, 0.6},
	"fast":        {0.3, 0.4},
	"quick":       {0.3, 0.4},
	"reliable":    {0.5, 0.5},
	"smooth":      {0.4, 0.5},
	"easy":        {0.4, 0.7},
	"solid":       {0.4, 0.4},
	"beautiful":   {0.85, 1.0},
	"recommend":   {0.4, 0.4},
	"recommended": {0.5, 0.5},
	"worth":       {0.3, 0.3},
	"works":       {0.2, 0.2},
	"pleasant":    {0.6, 0.8},
	"fun":         {0.4, 0.5},
	"cool":        {0.35, 0.65},
	"thanks":      {0.3, 0.4},
	"thank":       {0.3, 0.4},
	"fresh":       {0.3, 0.4},
	"clean":       {0.4, 0.4},
	"win":         {0.4, 0.4},
	"winner":      {0.5, 0.5},
	"success":     {0.5, 0.4},
	"successful":  {0.6, 0.6},
	"improved":    {0.4, 0.4},
	"improvement": {0.3, 0.3},

	// Negative.
	"bad":           {-0.7, 0.67},
	"terrible":      {-1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"horrible":      {-1.0, 1.0},
	"dreadful":      {-0.9, 0.9},
	"worst":         {-1.0, 0.3},
	"worse":         {-0.5, 0.5},
	"poor":          {-0.4, 0.6},
	"hate":          {-0.8, 0.9},
	"hates":         {-0.8, 0.9},
	"hated":         {-0.9, 0.9},
	"dislike":       {-0.4, 0.5},
	"disliked":      {-0.5, 0.6},
	"disappointing": {-0.6, 0.7},
	"disappointed":  {-0.75, 0.75},
	"disappointment": {-0.6, 0.7},
	"useless":       {-0.5, 0.6},
	"broken":        {-0.4, 0.4},
	"breaks":        {-0.3, 0.3},
	"slow":          {-0.3, 0.4},
	"unreliable":    {-0.5, 0.5},
	"buggy":         {-0.6, 0.7},
	"bug":           {-0.3, 0.3},
	"bugs":          {-0.3, 0.3},
	"crash":         {-0.5, 0.5},
	"crashes":       {-0.5, 0.5},
	"crashed":       {-0.5, 0.5},
	"fail":          {-0.5, 0.5},
	"fails":         {-0.5, 0.5},
	"failed":        {-0.6, 0.6},
	"failure":       {-0.6, 0.6},
	"wrong":         {-0.5, 0.5},
	"error":         {-0.3, 0.3},
	"errors":        {-0.3, 0.3},
	"problem":       {-0.3, 0.3},
	"problems":      {-0.3, 0.3},
	"issue":         {-0.2, 0.2},
	"issues":        {-0.2, 0.2},
	"annoying":      {-0.6, 0.8},
	"annoyed":       {-0.6, 0.8},
	"frustrating":   {-0.7, 0.8},
	"frustrated":    {-0.7, 0.8},
	"angry":         {-0.7, 0.9},
	"sad":           {-0.5, 1.0},
	"unhappy":       {-0.6, 0.8},
	"ugly":          {-0.7, 0.9},
	"dirty":         {-0.4, 0.5},
	"expensive":     {-0.3, 0.5},
	"overpriced":    {-0.5, 0.6},
	"cheap":         {-0.2, 0.4},
	"waste":         {-0.5, 0.5},
	"wasted":        {-0.6, 0.6},
	"scam":          {-0.9, 0.9},
	"rude":          {-0.7, 0.8},
	"difficult":     {-0.4, 0.6},
	"hard":          {-0.3, 0.5},
	"confusing":     {-0.4, 0.6},
	"lost":          {-0.3, 0.4},
	"lose":          {-0.3, 0.4},
	"missing":       {-0.2, 0.3},
	"avoid":         {-0.4, 0.4},
	"regret":        {-0.6, 0.7},
	"refund":        {-0.2, 0.3},

	// Subjective but neutral in valence.
	"okay":     {0.0, 0.5},
	"ok":       {0.0, 0.5},
	"average":  {0.0, 0.4},
	"ordinary": {0.0, 0.5},
	"typical":  {0.0, 0.4},
	"usual":    {0.0, 0.3},
	"normal":   {0.0, 0.3},
	"standard": {0.0, 0.3},
}

// negators invert and dampen the polarity of the word they precede.
var negators = map[string]struct{}{
	"not":      {},
	"no":       {},
	"never":    {},
	"none":     {},
	"neither":  {},
	"nor":      {},
	"cannot":   {},
	"cant":     {},
	"dont":     {},
	"doesnt":   {},
	"didnt":    {},
	"wont":     {},
	"wouldnt":  {},
	"couldnt":  {},
	"shouldnt": {},
	"isnt":     {},
	"wasnt":    {},
	"arent":    {},
	"werent":   {},
	"hasnt":    {},
	"havent":   {},
	"hadnt":    {},
	"hardly":   {},
	"without":  {},
}

// boosters scale the polarity of the word they precede.
// Factors above 1 intensify, below 1 diminish.
var boosters = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"absolutely": 1.5,
	"incredibly": 1.5,
	"totally":    1.3,
	"completely": 1.3,
	"highly":     1.4,
	"super":      1.4,
	"so":         1.2,
	"too":        1.2,
	"quite":      1.1,
	"slightly":   0.7,
	"somewhat":   0.7,
	"barely":     0.5,
	"fairly":     0.8,
	"rather":     0.9,
	"kinda":      0.8,
	"mostly":     0.9,
}
