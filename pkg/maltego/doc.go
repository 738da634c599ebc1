// Package maltego converts VirusTotal graphs into Maltego's CSV import format.
//
// # Overview
//
// A Maltego CSV import file is a sequence of blocks. Each entity block has a
// display header line, a property header line and one row; the file ends with
// a single link block whose rows reference entity IDs from earlier blocks:
//
//	maltego.Domain,Domain Name,WHOIS Info
//	EntityID,fqdn,whois-info
//	4821093375102,www.hooli.com,
//
//	Maltego Link,Source Entity ID,Target Entity ID,...
//	LinkID,SourceEntityID,TargetEntityID,...
//	9012837465012,4821093375102,1102938475610,resolutions,1,,-1,-1,
//
// # Entities
//
// Four VirusTotal node types are exported, see [EntityFor]:
//
//   - file: maltego.Hash
//   - ip_address: maltego.IPv4Address
//   - domain: maltego.Domain
//   - url: maltego.URL (url and title resolved through a [URLResolver])
//
// Nodes of any other type render as an empty block and never receive an ID.
//
// # Links
//
// VirusTotal graphs connect two entities through a relationship node:
//
//	www.hooli.com --resolutions--> relationships_resolutions_x --resolutions--> 8.8.8.8
//
// [Exporter.RenderLinks] collapses each such two-hop path into one link row
// from the source entity to the final target, labelled with the connection
// type. Relationship nodes never appear in the output.
//
// # Identifiers
//
// Entity and link IDs are 13-digit decimal strings from an [IDGenerator],
// unique within one export. They are not stable across runs.
package maltego
