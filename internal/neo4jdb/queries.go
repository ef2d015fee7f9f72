package neo4jdb

// Expedition import: one Expedition node per expedition keyed by
// (expeditionId, year), linked to its Peak, Agency and Route nodes.
// Route relationships carry the per-route success flag.
const expeditionsQuery = `
UNWIND $expeditions AS row
MERGE (e:Expedition {expeditionId: row.EXPID, year: row.YEAR})
SET e.season = row.SEASON_DESC,
    e.host = row.HOST_DESC,
    e.terminationReason = row.TERMREASON_DESC,
    e.terminationDate = row.TERMDATE,
    e.baseCampDate = row.BCDATE,
    e.summitDate = row.SMTDATE,
    e.summitTime = row.SMTTIME,
    e.totalMembers = row.TOTMEMBERS,
    e.totalHired = row.TOTHIRED,
    e.oxygenUsed = (row.O2USED = 'True'),
    e.commercialRoute = (row.COMRTE = 'True'),
    e.standardRoute = (row.STDRTE = 'True'),
    e.primaryReference = row.PRIMREF,
    e.routeMemo = row.ROUTEMEMO
MERGE (p:Peak {peakId: row.PEAKID})
MERGE (e)-[:CLIMBS]->(p)
FOREACH (_ IN CASE WHEN row.AGENCY <> '' THEN [1] ELSE [] END |
    MERGE (a:Agency {name: row.AGENCY})
    MERGE (e)-[:ORGANIZED_BY]->(a))
FOREACH (_ IN CASE WHEN row.ROUTE1 <> '' THEN [1] ELSE [] END |
    MERGE (r:Route {name: row.ROUTE1})
    MERGE (e)-[v:VIA_ROUTE]->(r)
    SET v.success = (row.SUCCESS1 = 'True'))
FOREACH (_ IN CASE WHEN row.ROUTE2 <> '' THEN [1] ELSE [] END |
    MERGE (r:Route {name: row.ROUTE2})
    MERGE (e)-[v:VIA_ROUTE]->(r)
    SET v.success = (row.SUCCESS2 = 'True'))
FOREACH (_ IN CASE WHEN row.ROUTE3 <> '' THEN [1] ELSE [] END |
    MERGE (r:Route {name: row.ROUTE3})
    MERGE (e)-[v:VIA_ROUTE]->(r)
    SET v.success = (row.SUCCESS3 = 'True'))
FOREACH (_ IN CASE WHEN row.ROUTE4 <> '' THEN [1] ELSE [] END |
    MERGE (r:Route {name: row.ROUTE4})
    MERGE (e)-[v:VIA_ROUTE]->(r)
    SET v.success = (row.SUCCESS4 = 'True'))
`

var expeditionsConstraints = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (e:Expedition) REQUIRE (e.expeditionId, e.year) IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Peak) REQUIRE p.peakId IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Agency) REQUIRE a.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (r:Route) REQUIRE r.name IS UNIQUE",
}

// Member import: one Member node per surrogate person identifier,
// linked to the Country of citizenship.
const membersQuery = `
UNWIND $members AS row
MERGE (m:Member {personId: row.PERSID})
SET m.firstName = row.FNAME,
    m.lastName = row.LNAME,
    m.sex = row.SEX,
    m.yearOfBirth = row.YOB,
    m.residence = row.RESIDENCE,
    m.occupation = row.OCCUPATION,
    m.sherpa = (row.SHERPA = 'True'),
    m.tibetan = (row.TIBETAN = 'True')
FOREACH (_ IN CASE WHEN row.CITIZEN <> '' THEN [1] ELSE [] END |
    MERGE (c:Country {name: row.CITIZEN})
    MERGE (m)-[:CITIZEN_OF]->(c))
`

var membersConstraints = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (m:Member) REQUIRE m.personId IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Country) REQUIRE c.name IS UNIQUE",
}

// Membership import: one MEMBER_OF relationship per member row,
// carrying the per-expedition attributes of that person.
const membershipsQuery = `
UNWIND $members AS row
MATCH (m:Member {personId: row.PERSID})
MATCH (e:Expedition {expeditionId: row.EXPID, year: row.MYEAR})
MERGE (m)-[r:MEMBER_OF]->(e)
SET r.leader = (row.LEADER = 'True'),
    r.hired = (row.HIRED = 'True'),
    r.summited = (row.MSUCCESS = 'True'),
    r.summitDate = row.MSMTDATE1,
    r.summitTime = row.MSMTTIME1,
    r.oxygenUsed = (row.MO2USED = 'True'),
    r.died = (row.DEATH = 'True'),
    r.deathDate = row.DEATHDATE,
    r.deathTime = row.DEATHTIME,
    r.deathType = row.DEATHTYPE_DESC,
    r.deathClass = row.DEATHCLASS_DESC,
    r.injured = (row.INJURY = 'True'),
    r.injuryType = row.INJURYTYPE_DESC,
    r.summitBid = row.MSMTBID_DESC,
    r.summitBidTermination = row.MSMTTERM_DESC
`

// Climb-together pass, one expedition per call. The existence guard
// keeps a pair of members linked by a single CLIMBED_WITH
// relationship no matter how many expeditions they shared, which only
// holds if each call sees the relationships committed by the previous
// ones. Running this over several expeditions inside one transaction
// would create duplicates.
const climbTogetherQuery = `
MATCH (m1:Member)-[:MEMBER_OF]->(e:Expedition {expeditionId: $id, year: $year})<-[:MEMBER_OF]-(m2:Member)
WHERE elementId(m1) < elementId(m2) AND NOT (m1)-[:CLIMBED_WITH]-(m2)
MERGE (m1)-[:CLIMBED_WITH]->(m2)
`

// Peak import: upserts the Peak nodes with the merged attributes and
// links them to their Range, District and Province nodes.
const peaksQuery = `
UNWIND $peaks AS row
MERGE (p:Peak {peakId: row.PEAKID})
SET p.name = row.PKNAME,
    p.alternateNames = row.PKNAME2,
    p.heightMetres = row.HEIGHTM,
    p.heightFeet = row.HEIGHTF,
    p.latitude = row.LAT,
    p.longitude = row.LON,
    p.municipality = row.MUNICIPALITY,
    p.open = row.OPEN,
    p.restrictions = row.RESTRICT,
    p.climbed = row.PCLIMBED,
    p.firstAscentDate = row.PSMTDATE,
    p.firstAscentYear = row.PYEAR,
    p.host = row.PHOST_DESC,
    p.nepaleseFees = row.NEPALESE_FEES,
    p.foreignerFees = row.FOREIGNER_FEES,
    p.description = row.DESCRIPTION,
    p.url = row.URL,
    p.isHdPeak = (row.IS_HD_PEAK = 'True')
FOREACH (_ IN CASE WHEN row.RANGE <> '' THEN [1] ELSE [] END |
    MERGE (r:Range {name: row.RANGE})
    MERGE (p)-[:IN_RANGE]->(r))
FOREACH (_ IN CASE WHEN row.DISTRICT <> '' THEN [1] ELSE [] END |
    MERGE (d:District {name: row.DISTRICT})
    MERGE (p)-[:IN_DISTRICT]->(d))
FOREACH (_ IN CASE WHEN row.DISTRICT <> '' AND row.PROVINCE <> '' THEN [1] ELSE [] END |
    MERGE (d:District {name: row.DISTRICT})
    MERGE (pr:Province {name: row.PROVINCE})
    MERGE (d)-[:IN_PROVINCE]->(pr))
`

var peaksConstraints = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (r:Range) REQUIRE r.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (d:District) REQUIRE d.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Province) REQUIRE p.name IS UNIQUE",
}
