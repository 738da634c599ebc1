package maltego

import "fmt"

// Block headers. Each entity block is the two header lines followed by one
// row; the link block is its header followed by any number of rows.
const (
	FileHeader = "maltego.Hash,Hash,Hash Type,Owner,Before,After,Included Media Types,Excluded Media Types\n" +
		"EntityID,properties.hash,type,owner,before,after,includeMediaType,excludeMediaType\n"

	IPv4Header = "maltego.IPv4Address,IP Address,Internal,owner,Before,After,Include Media Type,Exclude Media Type\n" +
		"EntityID,ipv4-address,ipaddress.internal,owner,Before,After,includeMediaType,excludeMediaType\n"

	DomainHeader = "maltego.Domain,Domain Name,WHOIS Info\n" +
		"EntityID,fqdn,whois-info\n"

	URLHeader = "maltego.URL,Short title,URL,Title,owner,Before,After,Include Media Type,Exclude Media Type\n" +
		"EntityID,short-title,url,title,owner,Before,After,includeMediaType,excludeMediaType\n"

	LinkHeader = "Maltego Link,Source Entity ID,Target Entity ID,Label,Show Label,Color,Style,Thickness,Description\n" +
		"LinkID,SourceEntityID,TargetEntityID,maltego.link.manual.type,maltego.link.show-label,maltego.link.color,maltego.link.style,maltego.link.thickness,maltego.link.manual.description\n"
)

// Values are written verbatim. Maltego's importer splits on commas without
// quoting rules, so a value containing a comma shifts the row's columns.

// FileBlock renders a maltego.Hash block.
func FileBlock(id, hash string) string {
	return FileHeader + fmt.Sprintf("%s,%s,\" \",,,,,\n", id, hash)
}

// IPv4Block renders a maltego.IPv4Address block.
func IPv4Block(id, address string) string {
	return IPv4Header + fmt.Sprintf("%s,%s,false,,,,,\n", id, address)
}

// DomainBlock renders a maltego.Domain block.
func DomainBlock(id, fqdn string) string {
	return DomainHeader + fmt.Sprintf("%s,%s,\n", id, fqdn)
}

// URLBlock renders a maltego.URL block. The URL fills both the short title
// and url columns.
func URLBlock(id, url, title string) string {
	return URLHeader + fmt.Sprintf("%s,%s,%s,%s,,,,,\n", id, url, url, title)
}

// LinkRow renders one row of the link block.
func LinkRow(id, sourceID, targetID, label string) string {
	return fmt.Sprintf("%s,%s,%s,%s,1,,-1,-1,\n", id, sourceID, targetID, label)
}
